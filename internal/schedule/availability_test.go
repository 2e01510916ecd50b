package schedule

import (
	"testing"
	"time"

	"github.com/padelhub/court-booking/internal/model"
)

func day(n int) *int { return &n }

// 2025-03-10 is a Monday.
func mondayRequest(bookings []BookingSummary) ResolveRequest {
	return ResolveRequest{
		Courts: []model.Court{
			{ID: 1, Name: "Cancha 1", IsActive: true, HourlyRateCents: 40000},
			{ID: 2, Name: "Cancha 2", IsActive: false, HourlyRateCents: 40000},
		},
		Dates: []string{"2025-03-10"},
		Week: map[int]model.Schedule{
			1: {DayOfWeek: 1, OpenTime: "07:00", CloseTime: "21:00"},
		},
		Bookings:     bookings,
		SlotDuration: 90,
		Buffer:       15,
	}
}

func TestResolveSkipsInactiveCourtsAndClosedDays(t *testing.T) {
	req := mondayRequest(nil)
	req.Dates = []string{"2025-03-10", "2025-03-11"} // Tuesday has no schedule row
	slots, err := Resolve(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots (one active court, one open day), got %d", len(slots))
	}
	for _, s := range slots {
		if s.CourtID != 1 || s.Date != "2025-03-10" {
			t.Fatalf("unexpected slot %+v", s)
		}
	}
}

func TestResolveMarksOccupiedSlots(t *testing.T) {
	booked := []BookingSummary{
		{BookingID: 9, CourtID: 1, Date: "2025-03-10", Start: mustClock(t, "10:30"), End: mustClock(t, "12:00")},
	}
	slots, err := Resolve(mondayRequest(booked))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unavailable := map[string]bool{}
	for _, s := range slots {
		if !s.Available {
			unavailable[s.Start] = true
		}
	}
	// The booking covers the 10:30-12:00 slot exactly; the 08:45-10:15
	// and 12:15-13:45 neighbours only touch its boundaries.
	if !unavailable["10:30"] {
		t.Fatal("10:30 slot should be occupied")
	}
	if len(unavailable) != 1 {
		t.Fatalf("expected exactly one occupied slot, got %v", unavailable)
	}
}

func TestResolveIdempotent(t *testing.T) {
	booked := []BookingSummary{
		{BookingID: 9, CourtID: 1, Date: "2025-03-10", Start: 600, End: 690},
	}
	first, err := Resolve(mondayRequest(booked))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := Resolve(mondayRequest(booked))
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestResolveCancellationFreesSlot(t *testing.T) {
	booking := BookingSummary{BookingID: 9, CourtID: 1, Date: "2025-03-10", Start: 600, End: 690}
	before, err := Resolve(mondayRequest([]BookingSummary{booking}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	booking.Cancelled = true
	after, err := Resolve(mondayRequest([]BookingSummary{booking}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var wasBlocked, nowFree bool
	for _, s := range before {
		if s.Start == "10:30" && !s.Available {
			wasBlocked = true
		}
	}
	for _, s := range after {
		if s.Start == "10:30" && s.Available {
			nowFree = true
		}
	}
	if !wasBlocked || !nowFree {
		t.Fatalf("cancellation did not free the slot (blocked=%v free=%v)", wasBlocked, nowFree)
	}
}

func TestResolveRatePrecedence(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rules := []model.PricingRule{
		{ID: 1, DayOfWeek: nil, StartTime: "07:00", EndTime: "21:00", PriceCents: 30000, CreatedAt: base},
		{ID: 2, DayOfWeek: day(1), StartTime: "17:00", EndTime: "21:00", PriceCents: 55000, CreatedAt: base.Add(time.Hour)},
		// Dirty data: second Monday rule overlapping the first, newer.
		{ID: 3, DayOfWeek: day(1), StartTime: "17:00", EndTime: "21:00", PriceCents: 60000, CreatedAt: base.Add(2 * time.Hour)},
	}
	// Morning on Monday: only the all-days rule matches.
	if got := ResolveRate(rules, 1, mustClock(t, "09:00"), 40000); got != 30000 {
		t.Fatalf("morning rate = %d, want 30000", got)
	}
	// Monday evening: day-specific beats default, newest of the two wins.
	if got := ResolveRate(rules, 1, mustClock(t, "18:00"), 40000); got != 60000 {
		t.Fatalf("evening rate = %d, want 60000", got)
	}
	// Tuesday evening: day-specific rules do not apply.
	if got := ResolveRate(rules, 2, mustClock(t, "18:00"), 40000); got != 30000 {
		t.Fatalf("tuesday rate = %d, want 30000", got)
	}
	// No rule matches at all: fall back to the court's hourly rate.
	if got := ResolveRate(rules, 1, mustClock(t, "06:00"), 40000); got != 40000 {
		t.Fatalf("fallback rate = %d, want 40000", got)
	}
}

func TestSlotPrice(t *testing.T) {
	// 90 minutes at 500.00/h -> 750.00.
	if got := SlotPrice(50000, 90); got != 75000 {
		t.Fatalf("price = %d, want 75000", got)
	}
	// Rounds half-up on uneven rates: 333.33/h for 30 min -> 166.67 -> 16667.
	if got := SlotPrice(33333, 30); got != 16667 {
		t.Fatalf("price = %d, want 16667", got)
	}
}

func TestDatesBetween(t *testing.T) {
	dates, err := DatesBetween("2025-03-10", "2025-03-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2025-03-10", "2025-03-11", "2025-03-12"}
	if len(dates) != len(want) {
		t.Fatalf("got %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("got %v, want %v", dates, want)
		}
	}
	if _, err := DatesBetween("2025-03-12", "2025-03-10"); err == nil {
		t.Fatal("expected error for inverted range")
	}
}
