package schedule

import "testing"

func TestComputeDayOccupancyFiltersCancelled(t *testing.T) {
	bookings := []BookingSummary{
		{BookingID: 1, CourtID: 1, Date: "2025-03-10", Start: 600, End: 690, PriceCents: 50000, CheckedIn: true},
		{BookingID: 2, CourtID: 2, Date: "2025-03-10", Start: 600, End: 690, PriceCents: 50000},
		{BookingID: 3, CourtID: 1, Date: "2025-03-10", Start: 705, End: 795, PriceCents: 50000, Cancelled: true},
		{BookingID: 4, CourtID: 1, Date: "2025-03-11", Start: 600, End: 690, PriceCents: 50000},
	}
	day := ComputeDayOccupancy("2025-03-10", bookings, 32)
	if day.TotalBookings != 2 {
		t.Fatalf("total = %d, want 2", day.TotalBookings)
	}
	if day.RevenueCents != 100000 {
		t.Fatalf("revenue = %d, want 100000", day.RevenueCents)
	}
	if day.CheckedIn != 1 {
		t.Fatalf("checked in = %d, want 1", day.CheckedIn)
	}
	// 2 of 32 slots -> 6.25% -> rounds to 6.
	if day.OccupancyRate != 6 {
		t.Fatalf("rate = %d, want 6", day.OccupancyRate)
	}
}

func TestOccupancyRateClampedToHundred(t *testing.T) {
	var bookings []BookingSummary
	for i := 0; i < 10; i++ {
		bookings = append(bookings, BookingSummary{
			BookingID: uint64(i + 1), CourtID: 1, Date: "2025-03-10",
			Start: 600 + i, End: 700 + i, PriceCents: 100,
		})
	}
	// More occupied slots than capacity must still report 100, not 250.
	day := ComputeDayOccupancy("2025-03-10", bookings, 4)
	if day.OccupancyRate != 100 {
		t.Fatalf("rate = %d, want 100", day.OccupancyRate)
	}
	empty := ComputeDayOccupancy("2025-03-10", nil, 0)
	if empty.OccupancyRate != 0 {
		t.Fatalf("rate with zero capacity = %d, want 0", empty.OccupancyRate)
	}
}

func TestComputeWeekGridCountsDistinctCourts(t *testing.T) {
	// Courts A and B booked 10:00-11:00, courts C and D idle.
	bookings := []BookingSummary{
		{BookingID: 1, CourtID: 1, Date: "2025-03-10", Start: 600, End: 660},
		{BookingID: 2, CourtID: 2, Date: "2025-03-10", Start: 600, End: 660},
	}
	cells := ComputeWeekGrid([]string{"2025-03-10"}, bookings, 4, 7*60, 21*60, false)
	if len(cells) != 2 {
		t.Fatalf("expected 2 occupied cells (10:00 and 10:30), got %d", len(cells))
	}
	first := cells[0]
	if first.Start != "10:00" || first.End != "10:30" {
		t.Fatalf("first cell %s-%s, want 10:00-10:30", first.Start, first.End)
	}
	if first.OccupiedCourts != 2 || first.TotalCourts != 4 || first.OccupancyRate != 50 {
		t.Fatalf("cell = %+v, want occupied 2/4 at 50%%", first)
	}
}

func TestComputeWeekGridSparseVersusDense(t *testing.T) {
	bookings := []BookingSummary{
		{BookingID: 1, CourtID: 1, Date: "2025-03-10", Start: 600, End: 630},
	}
	sparse := ComputeWeekGrid([]string{"2025-03-10"}, bookings, 4, 600, 720, false)
	if len(sparse) != 1 {
		t.Fatalf("sparse output %d cells, want 1", len(sparse))
	}
	dense := ComputeWeekGrid([]string{"2025-03-10"}, bookings, 4, 600, 720, true)
	if len(dense) != 4 {
		t.Fatalf("dense output %d cells, want 4", len(dense))
	}
	for _, cell := range dense[1:] {
		if cell.OccupiedCourts != 0 || cell.OccupancyRate != 0 {
			t.Fatalf("idle cell reports occupancy: %+v", cell)
		}
	}
}

func TestComputeWeekGridIgnoresCancelled(t *testing.T) {
	bookings := []BookingSummary{
		{BookingID: 1, CourtID: 1, Date: "2025-03-10", Start: 600, End: 660, Cancelled: true},
	}
	cells := ComputeWeekGrid([]string{"2025-03-10"}, bookings, 4, 600, 720, false)
	if len(cells) != 0 {
		t.Fatalf("cancelled booking produced %d cells", len(cells))
	}
}

func TestRoundRateHalfUp(t *testing.T) {
	cases := []struct {
		occupied, total, want int
	}{
		{1, 8, 13},  // 12.5 rounds up
		{1, 3, 33},  // 33.33 rounds down
		{2, 3, 67},  // 66.67 rounds up
		{0, 4, 0},
		{4, 4, 100},
	}
	for _, tc := range cases {
		if got := roundRate(tc.occupied, tc.total); got != tc.want {
			t.Fatalf("roundRate(%d, %d) = %d, want %d", tc.occupied, tc.total, got, tc.want)
		}
	}
}
