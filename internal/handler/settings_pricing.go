package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padelhub/court-booking/internal/model"
	"github.com/padelhub/court-booking/internal/repository"
	"github.com/padelhub/court-booking/internal/schedule"
)

// PricingHandler manages the club's pricing rules (ADMIN only).
// Overlapping rules within the same day scope are rejected at write
// time with a 409 naming the existing rule, so reads never have to
// disambiguate truly conflicting bands.
type PricingHandler struct {
	Pricing *repository.PricingRepo
}

func NewPricingHandler(p *repository.PricingRepo) *PricingHandler {
	if p == nil {
		panic("nil repository passed to NewPricingHandler")
	}
	return &PricingHandler{Pricing: p}
}

type pricingReq struct {
	DayOfWeek  *int   `json:"day_of_week"` // 0=Sunday..6=Saturday, null = all days
	StartTime  string `json:"start_time"`  // "HH:MM"
	EndTime    string `json:"end_time"`    // "HH:MM"
	PriceCents uint32 `json:"price_cents"` // per hour
}

type pricingResp struct {
	ID         uint64 `json:"id"`
	DayOfWeek  *int   `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	PriceCents uint32 `json:"price_cents"`
}

func toPricingResp(r model.PricingRule) pricingResp {
	return pricingResp{
		ID:         r.ID,
		DayOfWeek:  r.DayOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		PriceCents: r.PriceCents,
	}
}

// validate checks the band is well formed before touching the database.
func (req *pricingReq) validate() error {
	if req.DayOfWeek != nil && (*req.DayOfWeek < 0 || *req.DayOfWeek > 6) {
		return &schedule.ValidationError{Field: "day_of_week", Reason: "must be 0..6 or null"}
	}
	start, err := schedule.ParseClock("start_time", req.StartTime)
	if err != nil {
		return err
	}
	end, err := schedule.ParseClock("end_time", req.EndTime)
	if err != nil {
		return err
	}
	if err := schedule.ValidateInterval(start, end); err != nil {
		return err
	}
	if req.PriceCents == 0 {
		return &schedule.ValidationError{Field: "price_cents", Reason: "must be positive"}
	}
	return nil
}

// List handles GET /v1/settings/pricing.
func (h *PricingHandler) List(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rules, err := h.Pricing.ListByClub(c.Request().Context(), clubID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]pricingResp, 0, len(rules))
	for _, r := range rules {
		out = append(out, toPricingResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Create handles POST /v1/settings/pricing.
func (h *PricingHandler) Create(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req pricingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rule, overlapID, err := h.Pricing.Create(c.Request().Context(), clubID, req.DayOfWeek, req.StartTime, req.EndTime, req.PriceCents)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":            "rule overlaps an existing rule",
				"overlapping_rule": overlapID,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toPricingResp(rule)})
}

// Update handles PUT /v1/settings/pricing/:id.
func (h *PricingHandler) Update(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rule id"})
	}
	var req pricingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rule, overlapID, err := h.Pricing.Update(c.Request().Context(), clubID, id, req.DayOfWeek, req.StartTime, req.EndTime, req.PriceCents)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":            "rule overlaps an existing rule",
				"overlapping_rule": overlapID,
			})
		}
		return writeError(c, err, 0)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toPricingResp(rule)})
}

// Delete handles DELETE /v1/settings/pricing/:id.
func (h *PricingHandler) Delete(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rule id"})
	}
	if err := h.Pricing.Delete(c.Request().Context(), clubID, id); err != nil {
		return writeError(c, err, 0)
	}
	return c.NoContent(http.StatusNoContent)
}
