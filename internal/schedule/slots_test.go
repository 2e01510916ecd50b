package schedule

import "testing"

func TestGenerateSlotsFullDay(t *testing.T) {
	open, _ := ParseClock("openTime", "07:00")
	close, _ := ParseClock("closeTime", "21:00")

	slots, err := GenerateSlots(open, close, 90, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(slots))
	}
	if got := FormatClock(slots[0].Start); got != "07:00" {
		t.Fatalf("first slot starts at %s, want 07:00", got)
	}
	last := slots[len(slots)-1]
	if FormatClock(last.Start) != "19:15" || FormatClock(last.End) != "20:45" {
		t.Fatalf("last slot is %s-%s, want 19:15-20:45", FormatClock(last.Start), FormatClock(last.End))
	}
	for i, s := range slots {
		if s.End > close {
			t.Fatalf("slot %d ends at %s, past closing", i, FormatClock(s.End))
		}
		if s.End-s.Start != 90 {
			t.Fatalf("slot %d has length %d, want 90", i, s.End-s.Start)
		}
		if i > 0 && s.Start-slots[i-1].End != 15 {
			t.Fatalf("gap before slot %d is %d, want 15", i, s.Start-slots[i-1].End)
		}
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	a, err := GenerateSlots(480, 1320, 60, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := GenerateSlots(480, 1320, 60, 0)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateSlotsDropsPartialSlot(t *testing.T) {
	// 21:00-22:00 window cannot fit a 90-minute slot at all.
	slots, err := GenerateSlots(21*60, 22*60, 90, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected 0 slots in a 60-minute window, got %d", len(slots))
	}

	// 10:00-12:30 fits one 90-minute slot; the 45 leftover minutes
	// after slot+buffer must not become a truncated second slot.
	slots, err = GenerateSlots(10*60, 12*60+30, 90, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
}

func TestGenerateSlotsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name                        string
		open, close, duration, buff int
	}{
		{"zero duration", 420, 1260, 0, 15},
		{"negative buffer", 420, 1260, 90, -1},
		{"close before open", 1260, 420, 90, 15},
		{"close past midnight", 420, 25 * 60, 90, 15},
	}
	for _, tc := range cases {
		if _, err := GenerateSlots(tc.open, tc.close, tc.duration, tc.buff); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestParseClock(t *testing.T) {
	min, err := ParseClock("startTime", "19:15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if min != 19*60+15 {
		t.Fatalf("got %d, want %d", min, 19*60+15)
	}
	for _, bad := range []string{"24:00", "9:15", "09:60", "0915", "late", "07:5a", "07:5 ", " 7:30", "0a:30"} {
		if _, err := ParseClock("startTime", bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
	if got := FormatClock(19*60 + 15); got != "19:15" {
		t.Fatalf("FormatClock = %s, want 19:15", got)
	}
}
