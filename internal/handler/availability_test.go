package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/padelhub/court-booking/internal/config"
	"github.com/padelhub/court-booking/internal/repository"
)

func runCalendarGet(t *testing.T, target string, get func(echo.Context) error) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("club_id", uint64(1))
	if err := get(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec.Code
}

func TestAvailabilityRejectsUnboundedRange(t *testing.T) {
	h := NewAvailabilityHandler(config.Config{},
		&repository.BookingRepo{}, &repository.CourtRepo{},
		&repository.PricingRepo{}, &repository.ScheduleRepo{})
	code := runCalendarGet(t, "/v1/availability?start_date=0001-01-01&end_date=9999-12-31", h.Get)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
}

func TestOccupancyRejectsUnboundedRange(t *testing.T) {
	h := NewOccupancyHandler(config.Config{},
		&repository.BookingRepo{}, &repository.CourtRepo{}, &repository.ScheduleRepo{})
	code := runCalendarGet(t, "/v1/occupancy?start_date=2020-01-01&end_date=2030-01-01", h.Get)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
}
