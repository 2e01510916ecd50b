package schedule

import (
    "math"
    "sort"

    "github.com/padelhub/court-booking/internal/model"
)

// CourtSlot is one entry of the availability output: a priced slot for
// a specific court and date, flagged available or not.
type CourtSlot struct {
    CourtID    uint64 `json:"court_id"`
    CourtName  string `json:"court_name"`
    Date       string `json:"date"`
    Start      string `json:"start"`
    End        string `json:"end"`
    PriceCents uint32 `json:"price_cents"`
    Available  bool   `json:"available"`
}

// ResolveRequest carries everything the availability resolver needs,
// fetched fresh per request by the caller.  The resolver itself has no
// side effects, so calling it twice over unchanged data yields
// identical output.
type ResolveRequest struct {
    Courts       []model.Court          // courts to resolve; inactive ones are skipped
    Dates        []string               // ordered "YYYY-MM-DD" dates
    Week         map[int]model.Schedule // operating hours keyed by day-of-week
    Rules        []model.PricingRule    // the club's pricing rules
    Bookings     []BookingSummary       // non-cancelled bookings for the range
    SlotDuration int                    // minutes per slot
    Buffer       int                    // turnover minutes between slots
}

// Resolve generates the priced (court, slot) matrix for the request.
// For each active court and date it generates the day's slots, prices
// each one via ResolveRate, and marks slots occupied using the same
// overlap predicate the conflict checker applies at write time.
// Output is ordered by date, court ID, then start time.
func Resolve(req ResolveRequest) ([]CourtSlot, error) {
    // Bucket bookings by (date, court) so each slot check only scans
    // its own court's intervals.
    type key struct {
        date    string
        courtID uint64
    }
    byCourt := make(map[key][]BookingInterval)
    for _, b := range req.Bookings {
        if b.Cancelled {
            continue
        }
        k := key{date: b.Date, courtID: b.CourtID}
        byCourt[k] = append(byCourt[k], BookingInterval{BookingID: b.BookingID, Start: b.Start, End: b.End})
    }

    out := make([]CourtSlot, 0)
    for _, date := range req.Dates {
        dow, err := DayOfWeek(date)
        if err != nil {
            return nil, err
        }
        day, ok := req.Week[dow]
        if !ok || day.Closed {
            continue
        }
        open, err := ParseClock("openTime", day.OpenTime)
        if err != nil {
            return nil, err
        }
        close, err := ParseClock("closeTime", day.CloseTime)
        if err != nil {
            return nil, err
        }
        slots, err := GenerateSlots(open, close, req.SlotDuration, req.Buffer)
        if err != nil {
            return nil, err
        }
        for _, court := range req.Courts {
            if !court.IsActive {
                continue
            }
            existing := byCourt[key{date: date, courtID: court.ID}]
            for _, s := range slots {
                rate := ResolveRate(req.Rules, dow, s.Start, court.HourlyRateCents)
                _, occupied := FindConflict(s.Start, s.End, existing)
                out = append(out, CourtSlot{
                    CourtID:    court.ID,
                    CourtName:  court.Name,
                    Date:       date,
                    Start:      FormatClock(s.Start),
                    End:        FormatClock(s.End),
                    PriceCents: SlotPrice(rate, req.SlotDuration),
                    Available:  !occupied,
                })
            }
        }
    }
    sort.SliceStable(out, func(i, j int) bool {
        a, b := out[i], out[j]
        if a.Date != b.Date {
            return a.Date < b.Date
        }
        if a.CourtID != b.CourtID {
            return a.CourtID < b.CourtID
        }
        return a.Start < b.Start
    })
    return out, nil
}

// ResolveRate picks the hourly rate for a day-of-week and start time.
// Precedence: a day-specific rule beats the all-days default, and among
// rules with the same day scope the most recently created wins.  That
// ordering only matters for dirty data — rule creation rejects overlaps
// within a day scope — but reads must still be deterministic.  When no
// rule matches, fallback (the court's own hourly rate) is used.
func ResolveRate(rules []model.PricingRule, dayOfWeek, startMin int, fallback uint32) uint32 {
    var best *model.PricingRule
    for i := range rules {
        r := &rules[i]
        if r.DayOfWeek != nil && *r.DayOfWeek != dayOfWeek {
            continue
        }
        rs, err := ParseClock("startTime", r.StartTime)
        if err != nil {
            continue
        }
        re, err := ParseClock("endTime", r.EndTime)
        if err != nil {
            continue
        }
        if startMin < rs || startMin >= re {
            continue
        }
        if best == nil || ruleBeats(r, best) {
            best = r
        }
    }
    if best == nil {
        return fallback
    }
    return best.PriceCents
}

// ruleBeats implements the precedence order used by ResolveRate.
func ruleBeats(a, b *model.PricingRule) bool {
    aDay := a.DayOfWeek != nil
    bDay := b.DayOfWeek != nil
    if aDay != bDay {
        return aDay
    }
    return a.CreatedAt.After(b.CreatedAt)
}

// SlotPrice converts an hourly rate into the total price of a slot,
// rounding half-up the way the billing screens do.
func SlotPrice(hourlyCents uint32, durationMin int) uint32 {
    return uint32(math.Floor(float64(hourlyCents)*float64(durationMin)/60 + 0.5))
}
