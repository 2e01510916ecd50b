package schedule

// Slot is one bookable [Start, End) interval for a court, in minutes
// past midnight.  Slots are derived from the club schedule and never
// persisted.
type Slot struct {
    Start int // inclusive start, minutes past midnight
    End   int // exclusive end, minutes past midnight
}

// GenerateSlots produces the ordered sequence of bookable slots for one
// court between open and close (minutes past midnight).  Each slot is
// exactly slotDuration minutes long; consecutive slots are separated by
// buffer minutes of non-bookable turnover time.  A trailing window
// shorter than slotDuration is dropped, so no slot ever ends past
// close.  The function is pure: identical input yields an identical
// sequence.
func GenerateSlots(open, close, slotDuration, buffer int) ([]Slot, error) {
    if slotDuration <= 0 {
        return nil, &ValidationError{Field: "slotDuration", Reason: "must be positive"}
    }
    if buffer < 0 {
        return nil, &ValidationError{Field: "bufferTime", Reason: "must not be negative"}
    }
    if open < 0 || close > 24*60 || close <= open {
        return nil, &ValidationError{Field: "schedule", Reason: "close must be after open within one day"}
    }
    step := slotDuration + buffer
    slots := make([]Slot, 0, (close-open)/step+1)
    for start := open; start+slotDuration <= close; start += step {
        slots = append(slots, Slot{Start: start, End: start + slotDuration})
    }
    return slots, nil
}
