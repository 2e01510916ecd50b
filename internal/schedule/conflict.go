package schedule

// BookingInterval is the slice of a booking the conflict checker cares
// about: which court, which booking row, and its half-open time range
// in minutes past midnight.  Callers must pre-filter to non-cancelled
// bookings of the relevant court and date.
type BookingInterval struct {
    BookingID uint64
    Start     int
    End       int
}

// Overlaps reports whether two half-open intervals intersect.  Touching
// boundaries (aEnd == bStart) do not overlap, so a booking ending at
// 11:30 and another starting at 11:30 coexist on the same court.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
    return aStart < bEnd && aEnd > bStart
}

// FindConflict checks a candidate [start, end) interval against the
// existing bookings and returns the ID of the first overlapping one.
// The second result is false when the candidate is conflict-free.
// It is a pure predicate; atomicity against concurrent writers is the
// caller's job (the repository re-runs this check inside the insert
// transaction).
func FindConflict(start, end int, existing []BookingInterval) (uint64, bool) {
    for _, b := range existing {
        if Overlaps(start, end, b.Start, b.End) {
            return b.BookingID, true
        }
    }
    return 0, false
}

// ValidateInterval rejects inverted or empty candidate intervals before
// they reach the conflict checker.
func ValidateInterval(start, end int) error {
    if end <= start {
        return &ValidationError{Field: "endTime", Reason: "end must be after start"}
    }
    return nil
}
