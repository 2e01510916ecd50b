package schedule

import (
    "math"
    "sort"
)

// BookingSummary is the read-model slice of a booking that occupancy
// and availability need.  Repositories map rows into this shape so the
// calculators stay free of SQL and of mutable state.
type BookingSummary struct {
    BookingID  uint64
    CourtID    uint64
    Date       string // "YYYY-MM-DD"
    Start      int    // minutes past midnight
    End        int    // minutes past midnight
    PriceCents uint32
    Cancelled  bool
    CheckedIn  bool
}

// DayOccupancy summarises one calendar day for dashboard display.
// Every view (calendar header, day modal, reports) must use this one
// calculator so the numbers never drift apart.
type DayOccupancy struct {
    Date          string `json:"date"`
    TotalBookings int    `json:"total_bookings"`
    RevenueCents  uint64 `json:"revenue_cents"`
    CheckedIn     int    `json:"checked_in"`
    OccupancyRate int    `json:"occupancy_rate"` // 0..100
}

// GridCell is one 30-minute cell of the week view, aggregated across
// all courts of the club.
type GridCell struct {
    Date           string `json:"date"`
    Start          string `json:"start"`
    End            string `json:"end"`
    OccupiedCourts int    `json:"occupied_courts"`
    TotalCourts    int    `json:"total_courts"`
    OccupancyRate  int    `json:"occupancy_rate"` // 0..100
}

// gridCellMinutes is the fixed resolution of the week-view grid.
const gridCellMinutes = 30

// roundRate converts an occupied/total ratio into a whole percentage,
// rounding half-up and clamping to [0, 100].  The clamp matters when
// callers feed more occupied slots than capacity (e.g. manual
// overbooking of historical data).
func roundRate(occupied, total int) int {
    if total <= 0 {
        return 0
    }
    rate := int(math.Floor(float64(occupied)/float64(total)*100 + 0.5))
    if rate < 0 {
        return 0
    }
    if rate > 100 {
        return 100
    }
    return rate
}

// ComputeDayOccupancy aggregates the bookings of a single date.
// Cancelled bookings are excluded from every metric at computation
// time; they are never deleted from storage, so filtering here keeps
// historical revenue reports stable.  slotCapacity is the total number
// of bookable slots that day across all active courts (see
// GenerateSlots); each non-cancelled booking consumes one slot.
func ComputeDayOccupancy(date string, bookings []BookingSummary, slotCapacity int) DayOccupancy {
    out := DayOccupancy{Date: date}
    occupied := 0
    for _, b := range bookings {
        if b.Cancelled || b.Date != date {
            continue
        }
        out.TotalBookings++
        out.RevenueCents += uint64(b.PriceCents)
        if b.CheckedIn {
            out.CheckedIn++
        }
        occupied++
    }
    out.OccupancyRate = roundRate(occupied, slotCapacity)
    return out
}

// ComputeWeekGrid builds the 30-minute occupancy grid for the given
// dates between gridStart and gridEnd (minutes past midnight).  A cell
// counts the distinct courts with a non-cancelled booking overlapping
// it.  Cells with zero occupied courts are omitted unless includeEmpty
// is set; the sparse default matches how dense calendars are rendered,
// not a correctness rule.  Output ordering is by date, then start.
func ComputeWeekGrid(dates []string, bookings []BookingSummary, totalCourts int, gridStart, gridEnd int, includeEmpty bool) []GridCell {
    // Index bookings by date once; the grid loop below touches each
    // date many times.
    byDate := make(map[string][]BookingSummary)
    for _, b := range bookings {
        if b.Cancelled {
            continue
        }
        byDate[b.Date] = append(byDate[b.Date], b)
    }

    cells := make([]GridCell, 0)
    for _, date := range dates {
        dayBookings := byDate[date]
        for start := gridStart; start+gridCellMinutes <= gridEnd; start += gridCellMinutes {
            end := start + gridCellMinutes
            courts := make(map[uint64]struct{})
            for _, b := range dayBookings {
                if Overlaps(start, end, b.Start, b.End) {
                    courts[b.CourtID] = struct{}{}
                }
            }
            occupied := len(courts)
            if occupied == 0 && !includeEmpty {
                continue
            }
            cells = append(cells, GridCell{
                Date:           date,
                Start:          FormatClock(start),
                End:            FormatClock(end),
                OccupiedCourts: occupied,
                TotalCourts:    totalCourts,
                OccupancyRate:  roundRate(occupied, totalCourts),
            })
        }
    }
    sort.SliceStable(cells, func(i, j int) bool {
        if cells[i].Date != cells[j].Date {
            return cells[i].Date < cells[j].Date
        }
        return cells[i].Start < cells[j].Start
    })
    return cells
}
