package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padelhub/court-booking/internal/model"
	"github.com/padelhub/court-booking/internal/repository"
	"github.com/padelhub/court-booking/internal/schedule"
)

// ScheduleHandler manages the club's weekly operating hours (ADMIN
// only).  The week is replaced as a whole; partial updates would let a
// day silently keep stale hours.
type ScheduleHandler struct {
	Schedules *repository.ScheduleRepo
}

func NewScheduleHandler(s *repository.ScheduleRepo) *ScheduleHandler {
	if s == nil {
		panic("nil repository passed to NewScheduleHandler")
	}
	return &ScheduleHandler{Schedules: s}
}

type scheduleDay struct {
	DayOfWeek int    `json:"day_of_week"` // 0=Sunday..6=Saturday
	OpenTime  string `json:"open_time"`   // "HH:MM", ignored when closed
	CloseTime string `json:"close_time"`  // "HH:MM", ignored when closed
	Closed    bool   `json:"closed"`
}

// Get handles GET /v1/settings/schedule.  Days with no stored row are
// reported as closed so the client always sees seven entries.
func (h *ScheduleHandler) Get(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	week, err := h.Schedules.Week(c.Request().Context(), clubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]scheduleDay, 0, 7)
	for dow := 0; dow <= 6; dow++ {
		if day, ok := week[dow]; ok {
			out = append(out, scheduleDay{
				DayOfWeek: day.DayOfWeek,
				OpenTime:  day.OpenTime,
				CloseTime: day.CloseTime,
				Closed:    day.Closed,
			})
		} else {
			out = append(out, scheduleDay{DayOfWeek: dow, Closed: true})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Put handles PUT /v1/settings/schedule.  The body must carry exactly
// the days to store; clock strings are validated before the replace
// transaction runs.
func (h *ScheduleHandler) Put(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Items []scheduleDay `json:"items"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(body.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "items is required"})
	}

	days := make([]model.Schedule, 0, len(body.Items))
	for _, d := range body.Items {
		if !d.Closed {
			open, err := schedule.ParseClock("open_time", d.OpenTime)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			clos, err := schedule.ParseClock("close_time", d.CloseTime)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			if err := schedule.ValidateInterval(open, clos); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
		}
		days = append(days, model.Schedule{
			ClubID:    clubID,
			DayOfWeek: d.DayOfWeek,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
			Closed:    d.Closed,
		})
	}

	if err := h.Schedules.Replace(c.Request().Context(), clubID, days); err != nil {
		var ve *schedule.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return h.Get(c)
}
