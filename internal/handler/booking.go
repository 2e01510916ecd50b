package handler

import (
	"context"  // detached contexts for event publishing
	"errors"   // errors.Is comparisons against repository sentinels
	"log"      // lost-race diagnostics
	"net/http" // HTTP status codes
	"strconv"  // query parameter parsing
	"strings"  // input trimming
	"time"     // now/horizon checks

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/padelhub/court-booking/internal/config"
	"github.com/padelhub/court-booking/internal/model"
	"github.com/padelhub/court-booking/internal/queue"
	"github.com/padelhub/court-booking/internal/repository"
	"github.com/padelhub/court-booking/internal/schedule"
	queue_publisher "github.com/padelhub/court-booking/internal/service"
	"github.com/padelhub/court-booking/internal/utils"
)

// BookingHandler groups the repositories required to create, move and
// cancel court bookings.  All methods assume that JWT authentication
// and role validation has already been performed by middleware.  The
// overlap invariant is enforced by the repository inside the write
// transaction; this handler only performs request-level validation
// (operating hours, horizon, pricing) that needs no locking.
type BookingHandler struct {
	Cfg       config.Config
	Bookings  *repository.BookingRepo
	Courts    *repository.CourtRepo
	Pricing   *repository.PricingRepo
	Schedules *repository.ScheduleRepo
	Players   *repository.PlayerRepo
	Clubs     *repository.ClubRepo
}

// NewBookingHandler constructs a BookingHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewBookingHandler(cfg config.Config, b *repository.BookingRepo, co *repository.CourtRepo, p *repository.PricingRepo, s *repository.ScheduleRepo, pl *repository.PlayerRepo, cl *repository.ClubRepo) *BookingHandler {
	if b == nil || co == nil || p == nil || s == nil || pl == nil || cl == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Cfg: cfg, Bookings: b, Courts: co, Pricing: p, Schedules: s, Players: pl, Clubs: cl}
}

// ----- DTOs -----

type bookingMutation struct {
	CourtID       uint64  `json:"court_id"`
	Date          string  `json:"date"`       // "YYYY-MM-DD"
	StartTime     string  `json:"start_time"` // "HH:MM"
	EndTime       string  `json:"end_time"`   // "HH:MM"
	PlayerName    string  `json:"player_name"`
	PlayerPhone   string  `json:"player_phone"`
	PlayerEmail   *string `json:"player_email"`
	PaymentMethod string  `json:"payment_method"` // cash | terminal | transfer | link
	Currency      string  `json:"currency"`
	Notes         *string `json:"notes"`
}

type bookingResp struct {
	ID            uint64  `json:"id"`
	Reference     string  `json:"reference"`
	CourtID       uint64  `json:"court_id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	PlayerName    string  `json:"player_name"`
	PlayerPhone   string  `json:"player_phone"`
	PlayerEmail   *string `json:"player_email,omitempty"`
	PriceCents    uint32  `json:"price_cents"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	PaymentMethod string  `json:"payment_method"`
	CheckedIn     bool    `json:"checked_in"`
	Notes         *string `json:"notes,omitempty"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:            b.ID,
		Reference:     b.Reference,
		CourtID:       b.CourtID,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		PlayerName:    b.PlayerName,
		PlayerPhone:   b.PlayerPhone,
		PlayerEmail:   b.PlayerEmail,
		PriceCents:    b.PriceCents,
		Currency:      b.Currency,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		PaymentMethod: b.PaymentMethod,
		CheckedIn:     b.CheckedIn,
		Notes:         b.Notes,
	}
}

// clubNow returns the current wall-clock time in the club's timezone.
// Schedules and booking times are club-local, so "is this in the past"
// must be answered in the same zone.  Unknown zones fall back to UTC.
func (h *BookingHandler) clubNow(ctx context.Context, clubID uint64) time.Time {
	now := time.Now().UTC()
	club, err := h.Clubs.GetByID(ctx, clubID)
	if err != nil {
		return now
	}
	loc, err := time.LoadLocation(club.Timezone)
	if err != nil {
		return now
	}
	return now.In(loc)
}

// validateInterval runs all request-level checks on a candidate
// (court, date, interval) and returns the priced total on success.
// Checks: well-formed date/clock strings, end after start, within the
// day's operating hours, not in the past, not beyond the booking
// horizon.  Returns a *schedule.ValidationError for client mistakes.
func (h *BookingHandler) validateInterval(c echo.Context, clubID uint64, court model.Court, date, startTime, endTime string) (uint32, error) {
	ctx := c.Request().Context()
	if !validDate(date) {
		return 0, &schedule.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	start, err := schedule.ParseClock("start_time", startTime)
	if err != nil {
		return 0, err
	}
	end, err := schedule.ParseClock("end_time", endTime)
	if err != nil {
		return 0, err
	}
	if err := schedule.ValidateInterval(start, end); err != nil {
		return 0, err
	}

	dow, err := schedule.DayOfWeek(date)
	if err != nil {
		return 0, err
	}
	week, err := h.Schedules.Week(ctx, clubID)
	if err != nil {
		return 0, err
	}
	day, ok := week[dow]
	if !ok || day.Closed {
		return 0, &schedule.ValidationError{Field: "date", Reason: "club is closed on this day"}
	}
	open, err := schedule.ParseClock("open_time", day.OpenTime)
	if err != nil {
		return 0, err
	}
	close, err := schedule.ParseClock("close_time", day.CloseTime)
	if err != nil {
		return 0, err
	}
	if start < open || end > close {
		return 0, &schedule.ValidationError{Field: "start_time", Reason: "outside operating hours"}
	}

	now := h.clubNow(ctx, clubID)
	today := now.Format("2006-01-02")
	if date < today || (date == today && start <= now.Hour()*60+now.Minute()) {
		return 0, &schedule.ValidationError{Field: "date", Reason: "booking is in the past"}
	}
	horizon := now.AddDate(0, 0, h.Cfg.BookingHorizonDays).Format("2006-01-02")
	if date > horizon {
		return 0, &schedule.ValidationError{Field: "date", Reason: "beyond the booking horizon"}
	}

	rules, err := h.Pricing.ListByClub(ctx, clubID)
	if err != nil {
		return 0, err
	}
	rate := schedule.ResolveRate(rules, dow, start, court.HourlyRateCents)
	return schedule.SlotPrice(rate, end-start), nil
}

// writeError maps validation and repository errors onto the JSON error
// responses shared by all booking mutations.
func writeError(c echo.Context, err error, conflictID uint64) error {
	var ve *schedule.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		body := echo.Map{"error": "time slot is no longer available"}
		if conflictID != 0 {
			body["conflicting_booking_id"] = conflictID
		}
		return c.JSON(http.StatusConflict, body)
	case errors.Is(err, repository.ErrTxConflict):
		log.Printf("booking: lost write race: %v", err)
		return c.JSON(http.StatusConflict, echo.Map{"error": "time slot is no longer available"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// List handles GET /v1/bookings.  Accepts either date= for a single
// day or start_date=&end_date= for a range, plus optional court_id and
// status filters.  Cancelled bookings are excluded unless status asks
// for them.
func (h *BookingHandler) List(c echo.Context) error {
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
	if endDate < startDate {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date before start_date"})
	}
	var courtID uint64
	if v := c.QueryParam("court_id"); v != "" {
		if courtID, err = strconv.ParseUint(v, 10, 64); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court_id"})
		}
	}
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && status != string(model.BookingConfirmed) && status != string(model.BookingCancelled) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	items, err := h.Bookings.ListByRange(c.Request().Context(), clubID, startDate, endDate, courtID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]bookingResp, 0, len(items))
	for _, b := range items {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), clubID, id)
	if err != nil {
		return writeError(c, err, 0)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(b)})
}

// Create handles POST /v1/bookings.  It validates the request, prices
// the interval from the club's pricing rules, links the booking to the
// player directory, and delegates the conflict check plus insert to
// the repository's single-transaction path.  On success a
// booking.created event is published outside the request transaction.
func (h *BookingHandler) Create(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingMutation
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	req.PlayerPhone = strings.TrimSpace(req.PlayerPhone)
	if req.CourtID == 0 || req.PlayerName == "" || req.PlayerPhone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "court_id, player_name and player_phone are required"})
	}

	ctx := c.Request().Context()
	court, err := h.Courts.GetByID(ctx, clubID, req.CourtID)
	if err != nil {
		return writeError(c, err, 0)
	}
	if !court.IsActive {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "court is not active"})
	}

	price, err := h.validateInterval(c, clubID, court, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return writeError(c, err, 0)
	}

	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	switch method {
	case "":
		method = "cash"
	case "cash", "terminal", "transfer", "link":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment_method"})
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "MXN"
	}

	player, err := h.Players.FindOrCreate(ctx, clubID, req.PlayerName, req.PlayerPhone, req.PlayerEmail)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	b := model.Booking{
		Reference:     utils.NewBookingReference(),
		ClubID:        clubID,
		CourtID:       court.ID,
		PlayerID:      &player.ID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PlayerName:    req.PlayerName,
		PlayerPhone:   req.PlayerPhone,
		PlayerEmail:   req.PlayerEmail,
		PriceCents:    price,
		Currency:      currency,
		Status:        model.BookingConfirmed,
		PaymentStatus: model.PaymentPending,
		PaymentMethod: method,
		Notes:         req.Notes,
	}
	conflictID, err := h.Bookings.CreateAtomic(ctx, &b)
	if err != nil {
		return writeError(c, err, conflictID)
	}

	if err := h.Players.RecordBooking(ctx, player.ID, price); err != nil {
		log.Printf("booking: record player stats failed: %v", err)
	}

	// Publish on a detached context so a slow broker cannot hold the
	// HTTP response.
	go func(ev queue.BookingCreatedEvent) {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingCreated(pubCtx, ev)
	}(queue.BookingCreatedEvent{
		BookingID:   b.ID,
		Reference:   b.Reference,
		ClubID:      b.ClubID,
		CourtID:     b.CourtID,
		CourtName:   court.Name,
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		PlayerName:  b.PlayerName,
		PlayerPhone: b.PlayerPhone,
		PriceCents:  b.PriceCents,
		Currency:    b.Currency,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"item": toBookingResp(b)})
}

// Reschedule handles PUT /v1/bookings/:id.  It moves a booking to a
// new court, date or interval, repricing it against the target slot.
// Omitted fields keep their current values.  The conflict check and
// the update run in one repository transaction with the booking's own
// row excluded from the scan.
func (h *BookingHandler) Reschedule(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req bookingMutation
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	current, err := h.Bookings.GetByID(ctx, clubID, id)
	if err != nil {
		return writeError(c, err, 0)
	}
	if current.Status == model.BookingCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is cancelled"})
	}

	courtID := current.CourtID
	if req.CourtID != 0 {
		courtID = req.CourtID
	}
	date := current.Date
	if req.Date != "" {
		date = req.Date
	}
	startTime := current.StartTime
	if req.StartTime != "" {
		startTime = req.StartTime
	}
	endTime := current.EndTime
	if req.EndTime != "" {
		endTime = req.EndTime
	}

	court, err := h.Courts.GetByID(ctx, clubID, courtID)
	if err != nil {
		return writeError(c, err, 0)
	}
	if !court.IsActive {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "court is not active"})
	}
	price, err := h.validateInterval(c, clubID, court, date, startTime, endTime)
	if err != nil {
		return writeError(c, err, 0)
	}

	conflictID, err := h.Bookings.RescheduleAtomic(ctx, clubID, id, courtID, date, startTime, endTime, price)
	if err != nil {
		return writeError(c, err, conflictID)
	}
	updated, err := h.Bookings.GetByID(ctx, clubID, id)
	if err != nil {
		return writeError(c, err, 0)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(updated)})
}

// Cancel handles POST /v1/bookings/:id/cancel.  Cancellation flips the
// status and keeps the row; repeating it is a no-op.  A
// booking.cancelled event is published on success.
func (h *BookingHandler) Cancel(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.Cancel(c.Request().Context(), clubID, id)
	if err != nil {
		return writeError(c, err, 0)
	}

	go func(ev queue.BookingCancelledEvent) {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingCancelled(pubCtx, ev)
	}(queue.BookingCancelledEvent{
		BookingID:   b.ID,
		Reference:   b.Reference,
		ClubID:      b.ClubID,
		CourtID:     b.CourtID,
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		PlayerName:  b.PlayerName,
		PlayerPhone: b.PlayerPhone,
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(b)})
}

// CheckIn handles POST /v1/bookings/:id/checkin.  The desk marks the
// player as arrived; mark_paid captures an onsite payment in the same
// update.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	clubID, err := getClubID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body struct {
		MarkPaid bool `json:"mark_paid"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	b, err := h.Bookings.CheckIn(c.Request().Context(), clubID, id, body.MarkPaid)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is cancelled"})
		}
		return writeError(c, err, 0)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(b)})
}
