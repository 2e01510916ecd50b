package router

import (
	"github.com/labstack/echo/v4"

	"github.com/padelhub/court-booking/internal/handler"
	"github.com/padelhub/court-booking/internal/middleware"
)

// StaffHandlers bundles the handlers mounted on the desk-facing /v1
// group so RegisterStaff does not take a nine-argument signature.
type StaffHandlers struct {
	Bookings     *handler.BookingHandler
	Availability *handler.AvailabilityHandler
	Occupancy    *handler.OccupancyHandler
	Courts       *handler.CourtHandler
	Players      *handler.PlayerHandler
}

// RegisterStaff registers the booking-desk endpoints under /v1.  All
// routes require a valid JWT with the ADMIN or STAFF role.  The cache
// middleware wraps the heavy read endpoints (availability, occupancy)
// and the rate limiter wraps the booking mutations; either may be nil
// to disable the concern.
func RegisterStaff(e *echo.Echo, h StaffHandlers, jwtSecret string, cache, limit echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
	)

	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if cache == nil {
		cache = passthrough
	}
	if limit == nil {
		limit = passthrough
	}

	// ---- Bookings ----
	g.GET("/bookings", h.Bookings.List)
	g.GET("/bookings/:id", h.Bookings.Get)
	g.POST("/bookings", h.Bookings.Create, limit)
	g.PUT("/bookings/:id", h.Bookings.Reschedule, limit)
	g.POST("/bookings/:id/cancel", h.Bookings.Cancel)
	g.POST("/bookings/:id/checkin", h.Bookings.CheckIn)

	// ---- Calendar reads ----
	g.GET("/availability", h.Availability.Get, cache)
	g.GET("/occupancy", h.Occupancy.Get, cache)

	// ---- Courts (read side; mutations are ADMIN-only) ----
	g.GET("/courts", h.Courts.List)

	// ---- Players ----
	g.GET("/players", h.Players.List)
	g.GET("/players/:id", h.Players.Get)
}
