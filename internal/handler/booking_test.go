package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/padelhub/court-booking/internal/config"
	"github.com/padelhub/court-booking/internal/repository"
)

func newBookingTestHandler() *BookingHandler {
	return NewBookingHandler(config.Config{},
		&repository.BookingRepo{}, &repository.CourtRepo{}, &repository.PricingRepo{},
		&repository.ScheduleRepo{}, &repository.PlayerRepo{}, &repository.ClubRepo{})
}

func TestCheckInRejectsMalformedBody(t *testing.T) {
	h := newBookingTestHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/5/checkin",
		strings.NewReader(`{"mark_paid": "yes"`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("club_id", uint64(1))

	if err := h.CheckIn(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
