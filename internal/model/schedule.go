package model

// Schedule holds the club's operating hours for one day of the week.
// It applies to every court of the club.  Days marked Closed generate
// no slots at all.
//
// Fields:
//  ID        – primary key identifier.
//  ClubID    – owning club.
//  DayOfWeek – 0=Sunday .. 6=Saturday.
//  OpenTime  – opening wall-clock time, "HH:MM".
//  CloseTime – closing wall-clock time, "HH:MM" (exclusive).
//  Closed    – the club does not open on this day.
type Schedule struct {
    ID        uint64 // schedules.id
    ClubID    uint64 // schedules.club_id
    DayOfWeek int    // schedules.day_of_week
    OpenTime  string // schedules.open_time
    CloseTime string // schedules.close_time
    Closed    bool   // schedules.closed
}
