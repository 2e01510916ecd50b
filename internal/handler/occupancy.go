package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padelhub/court-booking/internal/config"
	"github.com/padelhub/court-booking/internal/repository"
	"github.com/padelhub/court-booking/internal/schedule"
)

// OccupancyHandler serves the dashboard numbers: per-day booking
// counts, revenue and occupancy rate, plus the 30-minute week grid.
// Every view goes through the same calculators so the calendar header
// and the reports never disagree.
type OccupancyHandler struct {
	Cfg       config.Config
	Bookings  *repository.BookingRepo
	Courts    *repository.CourtRepo
	Schedules *repository.ScheduleRepo
}

func NewOccupancyHandler(cfg config.Config, b *repository.BookingRepo, co *repository.CourtRepo, s *repository.ScheduleRepo) *OccupancyHandler {
	if b == nil || co == nil || s == nil {
		panic("nil repository passed to NewOccupancyHandler")
	}
	return &OccupancyHandler{Cfg: cfg, Bookings: b, Courts: co, Schedules: s}
}

// Get handles GET /v1/occupancy?start_date&end_date&include_empty?.
// The response carries one day summary per requested date and the week
// grid cells for the range.  Cells with zero occupied courts are
// omitted unless include_empty=true; sparse output is what the dense
// calendar rendering wants.
func (h *OccupancyHandler) Get(c echo.Context) error {
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
	includeEmpty := c.QueryParam("include_empty") == "true"

	dates, err := schedule.DatesBetween(startDate, endDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	courts, err := h.Courts.ListByClub(ctx, clubID, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	week, err := h.Schedules.Week(ctx, clubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bookings, err := h.Bookings.SummariesByRange(ctx, clubID, startDate, endDate, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// The grid spans the club's widest operating window across the
	// week so every date lines up on the same rows.
	gridStart, gridEnd := -1, -1
	days := make([]schedule.DayOccupancy, 0, len(dates))
	for _, date := range dates {
		capacity := 0
		dow, err := schedule.DayOfWeek(date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if day, ok := week[dow]; ok && !day.Closed {
			open, err := schedule.ParseClock("open_time", day.OpenTime)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid schedule data"})
			}
			close, err := schedule.ParseClock("close_time", day.CloseTime)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid schedule data"})
			}
			if gridStart == -1 || open < gridStart {
				gridStart = open
			}
			if close > gridEnd {
				gridEnd = close
			}
			slots, err := schedule.GenerateSlots(open, close, h.Cfg.SlotDurationMin, h.Cfg.SlotBufferMin)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid schedule data"})
			}
			capacity = len(slots) * len(courts)
		}
		days = append(days, schedule.ComputeDayOccupancy(date, bookings, capacity))
	}

	cells := []schedule.GridCell{}
	if gridStart != -1 {
		cells = schedule.ComputeWeekGrid(dates, bookings, len(courts), gridStart, gridEnd, includeEmpty)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"days":  days,
		"cells": cells,
	})
}
