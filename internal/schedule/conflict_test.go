package schedule

import (
	"math/rand"
	"testing"
)

func mustClock(t *testing.T, s string) int {
	t.Helper()
	min, err := ParseClock("time", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return min
}

func TestFindConflictBoundaryTouchIsNotConflict(t *testing.T) {
	existing := []BookingInterval{
		{BookingID: 7, Start: mustClock(t, "10:00"), End: mustClock(t, "11:30")},
	}
	// Candidate starting exactly where the existing booking ends.
	if id, hit := FindConflict(mustClock(t, "11:30"), mustClock(t, "13:00"), existing); hit {
		t.Fatalf("back-to-back booking reported conflict with %d", id)
	}
	// Candidate ending exactly where the existing booking starts.
	if id, hit := FindConflict(mustClock(t, "08:30"), mustClock(t, "10:00"), existing); hit {
		t.Fatalf("back-to-back booking reported conflict with %d", id)
	}
}

func TestFindConflictOverlapReportsBookingID(t *testing.T) {
	existing := []BookingInterval{
		{BookingID: 41, Start: mustClock(t, "08:00"), End: mustClock(t, "09:30")},
		{BookingID: 42, Start: mustClock(t, "10:00"), End: mustClock(t, "11:30")},
	}
	cases := []struct {
		name       string
		start, end string
	}{
		{"starts inside", "10:30", "12:00"},
		{"ends inside", "09:45", "10:30"},
		{"contains existing", "09:45", "12:00"},
		{"contained by existing", "10:15", "11:00"},
		{"identical interval", "10:00", "11:30"},
	}
	for _, tc := range cases {
		id, hit := FindConflict(mustClock(t, tc.start), mustClock(t, tc.end), existing)
		if !hit {
			t.Fatalf("%s: expected conflict", tc.name)
		}
		if id != 42 {
			t.Fatalf("%s: conflicting id = %d, want 42", tc.name, id)
		}
	}
}

// TestNoOverlapInvariant grows a random schedule through the checker
// and asserts the accepted set stays pairwise disjoint.
func TestNoOverlapInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var accepted []BookingInterval
	for i := 0; i < 500; i++ {
		start := rng.Intn(23 * 60)
		end := start + 30 + rng.Intn(180)
		if _, hit := FindConflict(start, end, accepted); hit {
			continue
		}
		accepted = append(accepted, BookingInterval{BookingID: uint64(i + 1), Start: start, End: end})
	}
	if len(accepted) < 2 {
		t.Fatalf("degenerate run, only %d accepted", len(accepted))
	}
	for i := range accepted {
		for j := i + 1; j < len(accepted); j++ {
			a, b := accepted[i], accepted[j]
			if Overlaps(a.Start, a.End, b.Start, b.End) {
				t.Fatalf("accepted bookings %d and %d overlap: [%d,%d) vs [%d,%d)",
					a.BookingID, b.BookingID, a.Start, a.End, b.Start, b.End)
			}
		}
	}
}

func TestValidateInterval(t *testing.T) {
	if err := ValidateInterval(600, 690); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateInterval(690, 600); err == nil {
		t.Fatal("expected error for inverted interval")
	}
	if err := ValidateInterval(600, 600); err == nil {
		t.Fatal("expected error for empty interval")
	}
}
