package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padelhub/court-booking/internal/model"
	"github.com/padelhub/court-booking/internal/repository"
)

// PlayerHandler serves the club's player directory.  Players are
// created implicitly when bookings are taken; these routes are
// read-only.
type PlayerHandler struct {
	Players *repository.PlayerRepo
}

func NewPlayerHandler(p *repository.PlayerRepo) *PlayerHandler {
	if p == nil {
		panic("nil repository passed to NewPlayerHandler")
	}
	return &PlayerHandler{Players: p}
}

type playerResp struct {
	ID              uint64     `json:"id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Email           *string    `json:"email,omitempty"`
	TotalBookings   uint32     `json:"total_bookings"`
	TotalSpentCents uint64     `json:"total_spent_cents"`
	LastBookingAt   *time.Time `json:"last_booking_at,omitempty"`
}

func toPlayerResp(p model.Player) playerResp {
	return playerResp{
		ID:              p.ID,
		Name:            p.Name,
		Phone:           p.Phone,
		Email:           p.Email,
		TotalBookings:   p.TotalBookings,
		TotalSpentCents: p.TotalSpentCents,
		LastBookingAt:   p.LastBookingAt,
	}
}

// List handles GET /v1/players.
func (h *PlayerHandler) List(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	players, err := h.Players.ListByClub(c.Request().Context(), clubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]playerResp, 0, len(players))
	for _, p := range players {
		out = append(out, toPlayerResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Get handles GET /v1/players/:id.
func (h *PlayerHandler) Get(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid player id"})
	}
	p, err := h.Players.GetByID(c.Request().Context(), clubID, id)
	if err != nil {
		return writeError(c, err, 0)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toPlayerResp(p)})
}
