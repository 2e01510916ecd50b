package schedule // package schedule implements the pure booking-calendar core: slot generation, conflict detection, occupancy and availability

import (
    "fmt"
    "time"
)

// Times inside this package are minutes past midnight in the club's
// local day.  The wire format everywhere is "HH:MM"; conversion happens
// at the package boundary so the arithmetic stays integer-only.

// ParseClock converts an "HH:MM" wall-clock string into minutes past
// midnight.  It accepts exactly five zero-padded characters, 00:00 ..
// 23:59, and rejects anything else with a ValidationError naming the
// offending field.  Strings that parse are already canonical, so they
// can be stored as-is and compared lexicographically in SQL.
func ParseClock(field, s string) (int, error) {
    if len(s) != 5 || s[2] != ':' ||
        !isClockDigit(s[0]) || !isClockDigit(s[1]) || !isClockDigit(s[3]) || !isClockDigit(s[4]) {
        return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("invalid time %q, expected HH:MM", s)}
    }
    h := int(s[0]-'0')*10 + int(s[1]-'0')
    m := int(s[3]-'0')*10 + int(s[4]-'0')
    if h > 23 || m > 59 {
        return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("time %q out of range", s)}
    }
    return h*60 + m, nil
}

func isClockDigit(b byte) bool { return b >= '0' && b <= '9' }

// FormatClock renders minutes past midnight back into "HH:MM".
func FormatClock(min int) string {
    return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// DayOfWeek returns 0=Sunday .. 6=Saturday for a "YYYY-MM-DD" date.
func DayOfWeek(date string) (int, error) {
    t, err := time.Parse("2006-01-02", date)
    if err != nil {
        return 0, &ValidationError{Field: "date", Reason: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date)}
    }
    return int(t.Weekday()), nil
}

// DatesBetween expands an inclusive [from, to] date range into the
// ordered list of "YYYY-MM-DD" strings it covers.
func DatesBetween(from, to string) ([]string, error) {
    start, err := time.Parse("2006-01-02", from)
    if err != nil {
        return nil, &ValidationError{Field: "startDate", Reason: fmt.Sprintf("invalid date %q", from)}
    }
    end, err := time.Parse("2006-01-02", to)
    if err != nil {
        return nil, &ValidationError{Field: "endDate", Reason: fmt.Sprintf("invalid date %q", to)}
    }
    if end.Before(start) {
        return nil, &ValidationError{Field: "endDate", Reason: "endDate is before startDate"}
    }
    var out []string
    for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
        out = append(out, d.Format("2006-01-02"))
    }
    return out, nil
}
