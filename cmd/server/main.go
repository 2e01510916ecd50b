package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/padelhub/court-booking/internal/config"
	"github.com/padelhub/court-booking/internal/database"
	"github.com/padelhub/court-booking/internal/handler"
	"github.com/padelhub/court-booking/internal/middleware"
	"github.com/padelhub/court-booking/internal/queue"
	"github.com/padelhub/court-booking/internal/repository"
	"github.com/padelhub/court-booking/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter.  A nil
	// client disables both; the server still runs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Repositories.
	clubs := repository.NewClubRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	courts := repository.NewCourtRepo(db)
	pricing := repository.NewPricingRepo(db)
	schedules := repository.NewScheduleRepo(db)
	bookings := repository.NewBookingRepo(db)
	players := repository.NewPlayerRepo(db)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, clubs, users, tokens)
	bookingH := handler.NewBookingHandler(cfg, bookings, courts, pricing, schedules, players, clubs)
	availabilityH := handler.NewAvailabilityHandler(cfg, bookings, courts, pricing, schedules)
	occupancyH := handler.NewOccupancyHandler(cfg, bookings, courts, schedules)
	courtH := handler.NewCourtHandler(courts)
	pricingH := handler.NewPricingHandler(pricing)
	scheduleH := handler.NewScheduleHandler(schedules)
	playerH := handler.NewPlayerHandler(players)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterStaff(e, router.StaffHandlers{
		Bookings:     bookingH,
		Availability: availabilityH,
		Occupancy:    occupancyH,
		Courts:       courtH,
		Players:      playerH,
	}, cfg.JWTSecret, cacheMW, limitMW)
	router.RegisterAdmin(e, courtH, pricingH, scheduleH, cfg.JWTSecret)

	// Consume booking events in the background; the consumer runs its
	// own reconnect loop and never stops the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
