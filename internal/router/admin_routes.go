package router

// This file registers admin-only routes for managing the club's setup:
// courts, pricing rules and the weekly schedule.  They are separate
// from the staff routes to keep concerns isolated.

import (
	"github.com/labstack/echo/v4"

	"github.com/padelhub/court-booking/internal/handler"
	"github.com/padelhub/court-booking/internal/middleware"
)

// RegisterAdmin registers the club-configuration endpoints under /v1.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, co *handler.CourtHandler, pr *handler.PricingHandler, sc *handler.ScheduleHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Courts ----
	g.POST("/courts", co.Create)
	g.PUT("/courts/:id", co.Update)
	g.POST("/courts/:id/deactivate", co.Deactivate)

	// ---- Pricing rules ----
	g.GET("/settings/pricing", pr.List)
	g.POST("/settings/pricing", pr.Create)
	g.PUT("/settings/pricing/:id", pr.Update)
	g.DELETE("/settings/pricing/:id", pr.Delete)

	// ---- Weekly schedule ----
	g.GET("/settings/schedule", sc.Get)
	g.PUT("/settings/schedule", sc.Put)
}
