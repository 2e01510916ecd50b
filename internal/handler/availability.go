package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/padelhub/court-booking/internal/config"
	"github.com/padelhub/court-booking/internal/model"
	"github.com/padelhub/court-booking/internal/repository"
	"github.com/padelhub/court-booking/internal/schedule"
)

// AvailabilityHandler serves the read-only slot matrix consumed by the
// booking calendar.  It gathers courts, operating hours, pricing rules
// and existing bookings for the requested range and hands everything
// to the pure resolver, so two identical requests over unchanged data
// return identical output.
type AvailabilityHandler struct {
	Cfg       config.Config
	Bookings  *repository.BookingRepo
	Courts    *repository.CourtRepo
	Pricing   *repository.PricingRepo
	Schedules *repository.ScheduleRepo
}

func NewAvailabilityHandler(cfg config.Config, b *repository.BookingRepo, co *repository.CourtRepo, p *repository.PricingRepo, s *repository.ScheduleRepo) *AvailabilityHandler {
	if b == nil || co == nil || p == nil || s == nil {
		panic("nil repository passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Cfg: cfg, Bookings: b, Courts: co, Pricing: p, Schedules: s}
}

// Get handles GET /v1/availability?start_date&end_date&court_id?.
// A single date= parameter is accepted as shorthand for a one-day
// range.  Inactive courts and closed days produce no slots.
func (h *AvailabilityHandler) Get(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	startDate := c.QueryParam("start_date")
	endDate := c.QueryParam("end_date")
	if d := c.QueryParam("date"); d != "" {
		startDate, endDate = d, d
	}
	if !validDate(startDate) || !validDate(endDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date or start_date/end_date required as YYYY-MM-DD"})
	}
	if rangeTooWide(startDate, endDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date range too large"})
	}
	var courtID uint64
	if v := c.QueryParam("court_id"); v != "" {
		if courtID, err = strconv.ParseUint(v, 10, 64); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court_id"})
		}
	}

	dates, err := schedule.DatesBetween(startDate, endDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	courts, err := h.Courts.ListByClub(ctx, clubID, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if courtID != 0 {
		filtered := make([]model.Court, 0, 1)
		for _, court := range courts {
			if court.ID == courtID {
				filtered = append(filtered, court)
			}
		}
		if len(filtered) == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		courts = filtered
	}
	week, err := h.Schedules.Week(ctx, clubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rules, err := h.Pricing.ListByClub(ctx, clubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bookings, err := h.Bookings.SummariesByRange(ctx, clubID, startDate, endDate, courtID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	slots, err := schedule.Resolve(schedule.ResolveRequest{
		Courts:       courts,
		Dates:        dates,
		Week:         week,
		Rules:        rules,
		Bookings:     bookings,
		SlotDuration: h.Cfg.SlotDurationMin,
		Buffer:       h.Cfg.SlotBufferMin,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability resolution failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": slots})
}
