package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padelhub/court-booking/internal/model"
	"github.com/padelhub/court-booking/internal/repository"
)

// CourtHandler manages the club's courts.  Routes are ADMIN-only
// except the listing, which the booking desk needs too.
type CourtHandler struct {
	Courts *repository.CourtRepo
}

func NewCourtHandler(co *repository.CourtRepo) *CourtHandler {
	if co == nil {
		panic("nil repository passed to NewCourtHandler")
	}
	return &CourtHandler{Courts: co}
}

type courtReq struct {
	Name            string `json:"name"`
	Indoor          bool   `json:"indoor"`
	HourlyRateCents uint32 `json:"hourly_rate_cents"`
}

type courtResp struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	Indoor          bool   `json:"indoor"`
	IsActive        bool   `json:"is_active"`
	HourlyRateCents uint32 `json:"hourly_rate_cents"`
}

func toCourtResp(ct model.Court) courtResp {
	return courtResp{
		ID:              ct.ID,
		Name:            ct.Name,
		Indoor:          ct.Indoor,
		IsActive:        ct.IsActive,
		HourlyRateCents: ct.HourlyRateCents,
	}
}

// List handles GET /v1/courts.  include_inactive=true also returns
// deactivated courts so admins can reactivate-by-edit later.
func (h *CourtHandler) List(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	activeOnly := c.QueryParam("include_inactive") != "true"
	courts, err := h.Courts.ListByClub(c.Request().Context(), clubID, activeOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]courtResp, 0, len(courts))
	for _, ct := range courts {
		out = append(out, toCourtResp(ct))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Create handles POST /v1/courts.
func (h *CourtHandler) Create(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req courtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.HourlyRateCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hourly_rate_cents is required"})
	}
	ct, err := h.Courts.Create(c.Request().Context(), clubID, req.Name, req.Indoor, req.HourlyRateCents)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toCourtResp(ct)})
}

// Update handles PUT /v1/courts/:id.
func (h *CourtHandler) Update(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	var req courtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.HourlyRateCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and hourly_rate_cents are required"})
	}
	ct, err := h.Courts.Update(c.Request().Context(), clubID, id, req.Name, req.Indoor, req.HourlyRateCents)
	if err != nil {
		return writeError(c, err, 0)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toCourtResp(ct)})
}

// Deactivate handles POST /v1/courts/:id/deactivate.  Deactivated
// courts stop producing availability and occupancy capacity; their
// historical bookings remain untouched.
func (h *CourtHandler) Deactivate(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	ct, err := h.Courts.Deactivate(c.Request().Context(), clubID, id)
	if err != nil {
		return writeError(c, err, 0)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toCourtResp(ct)})
}
