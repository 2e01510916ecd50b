package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/go-sql-driver/mysql"

    "github.com/padelhub/court-booking/internal/model"
    "github.com/padelhub/court-booking/internal/schedule"
)

// BookingRepo provides persistence for bookings.  Booking times are
// stored as zero-padded "HH:MM" strings so lexicographic comparison in
// SQL matches chronological comparison; dates are DATE columns and all
// timestamps are UTC.
//
// The no-overlap invariant (per court and date, non-cancelled bookings
// have pairwise disjoint [start, end) intervals) is enforced here, not
// in handlers: CreateAtomic and RescheduleAtomic lock the court's rows
// for the date and re-run the conflict check inside the same
// transaction as the write, so two concurrent requests for an
// overlapping interval cannot both succeed.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for callers that need to coordinate
// a transaction across repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// bookingColumns is the select list shared by every read in this file.
const bookingColumns = `id, reference, club_id, court_id, player_id, DATE_FORMAT(date, '%Y-%m-%d'),
       start_time, end_time, player_name, player_phone, player_email,
       price_cents, currency, status, payment_status, payment_method,
       checked_in, checked_in_at, notes, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
    var b model.Booking
    var playerID sql.NullInt64
    var email, notes sql.NullString
    var checkedInAt sql.NullTime
    err := row.Scan(
        &b.ID, &b.Reference, &b.ClubID, &b.CourtID, &playerID, &b.Date,
        &b.StartTime, &b.EndTime, &b.PlayerName, &b.PlayerPhone, &email,
        &b.PriceCents, &b.Currency, &b.Status, &b.PaymentStatus, &b.PaymentMethod,
        &b.CheckedIn, &checkedInAt, &notes, &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        return model.Booking{}, err
    }
    if playerID.Valid {
        pid := uint64(playerID.Int64)
        b.PlayerID = &pid
    }
    if email.Valid {
        e := email.String
        b.PlayerEmail = &e
    }
    if notes.Valid {
        n := notes.String
        b.Notes = &n
    }
    if checkedInAt.Valid {
        t := checkedInAt.Time.UTC()
        b.CheckedInAt = &t
    }
    return b, nil
}

// isLostRace reports whether a MySQL error means the transaction lost
// a race with a concurrent writer (deadlock 1213, lock wait 1205).
func isLostRace(err error) bool {
    var me *mysql.MySQLError
    if !errors.As(err, &me) {
        return false
    }
    return me.Number == 1213 || me.Number == 1205
}

// lockIntervalsTx reads the non-cancelled intervals for a court and
// date with FOR UPDATE, so concurrent creators of the same (court,
// date) serialize on the row range until the transaction ends.
func lockIntervalsTx(ctx context.Context, tx *sql.Tx, clubID, courtID uint64, date string, excludeID uint64) ([]schedule.BookingInterval, error) {
    const q = `SELECT id, start_time, end_time FROM bookings
               WHERE club_id = ? AND court_id = ? AND date = ? AND status <> 'CANCELLED' AND id <> ?
               FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q, clubID, courtID, date, excludeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []schedule.BookingInterval
    for rows.Next() {
        var id uint64
        var startStr, endStr string
        if err := rows.Scan(&id, &startStr, &endStr); err != nil {
            return nil, err
        }
        start, err := schedule.ParseClock("startTime", startStr)
        if err != nil {
            return nil, err
        }
        end, err := schedule.ParseClock("endTime", endStr)
        if err != nil {
            return nil, err
        }
        out = append(out, schedule.BookingInterval{BookingID: id, Start: start, End: end})
    }
    return out, rows.Err()
}

// CreateAtomic inserts a booking iff no non-cancelled booking on the
// same court and date overlaps its interval.  The conflict check and
// the insert share one transaction; the court/date rows are locked
// first, so the loser of a concurrent race observes the winner's row
// and receives ErrConflict with the conflicting booking ID.  A race
// detected only by the engine (deadlock rollback) surfaces as
// ErrTxConflict.  On success the generated ID and DB-side timestamps
// are populated on b.
func (r *BookingRepo) CreateAtomic(ctx context.Context, b *model.Booking) (uint64, error) {
    start, err := schedule.ParseClock("startTime", b.StartTime)
    if err != nil {
        return 0, err
    }
    end, err := schedule.ParseClock("endTime", b.EndTime)
    if err != nil {
        return 0, err
    }

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    existing, err := lockIntervalsTx(ctx, tx, b.ClubID, b.CourtID, b.Date, 0)
    if err != nil {
        if isLostRace(err) {
            return 0, ErrTxConflict
        }
        return 0, err
    }
    if conflictID, hit := schedule.FindConflict(start, end, existing); hit {
        return conflictID, ErrConflict
    }

    const ins = `INSERT INTO bookings
                 (reference, club_id, court_id, player_id, date, start_time, end_time,
                  player_name, player_phone, player_email, price_cents, currency,
                  status, payment_status, payment_method, notes)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, ins,
        b.Reference, b.ClubID, b.CourtID, b.PlayerID, b.Date, b.StartTime, b.EndTime,
        b.PlayerName, b.PlayerPhone, b.PlayerEmail, b.PriceCents, b.Currency,
        b.Status, b.PaymentStatus, b.PaymentMethod, b.Notes,
    )
    if err != nil {
        if isLostRace(err) {
            return 0, ErrTxConflict
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    b.ID = uint64(id)
    if err := tx.Commit(); err != nil {
        if isLostRace(err) {
            return 0, ErrTxConflict
        }
        return 0, err
    }
    committed = true

    // Query back DB defaults outside the write transaction.
    created, err := r.GetByID(ctx, b.ClubID, b.ID)
    if err == nil {
        *b = created
    }
    return 0, nil
}

// RescheduleAtomic moves a booking to a new court, date or interval
// under the same locking discipline as CreateAtomic.  The booking's
// own row is excluded from the conflict scan.  Returns the conflicting
// booking ID alongside ErrConflict when the target interval is taken.
func (r *BookingRepo) RescheduleAtomic(ctx context.Context, clubID, bookingID, courtID uint64, date, startTime, endTime string, priceCents uint32) (uint64, error) {
    start, err := schedule.ParseClock("startTime", startTime)
    if err != nil {
        return 0, err
    }
    end, err := schedule.ParseClock("endTime", endTime)
    if err != nil {
        return 0, err
    }

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Verify the booking exists, belongs to the club and is not
    // cancelled; lock its row so concurrent reschedules serialize.
    var ownerClub uint64
    var status string
    err = tx.QueryRowContext(ctx,
        `SELECT club_id, status FROM bookings WHERE id = ? FOR UPDATE`, bookingID,
    ).Scan(&ownerClub, &status)
    if err != nil {
        if err == sql.ErrNoRows {
            return 0, ErrNotFound
        }
        if isLostRace(err) {
            return 0, ErrTxConflict
        }
        return 0, err
    }
    if ownerClub != clubID {
        return 0, ErrForbidden
    }
    if status == string(model.BookingCancelled) {
        return 0, ErrConflict
    }

    existing, err := lockIntervalsTx(ctx, tx, clubID, courtID, date, bookingID)
    if err != nil {
        if isLostRace(err) {
            return 0, ErrTxConflict
        }
        return 0, err
    }
    if conflictID, hit := schedule.FindConflict(start, end, existing); hit {
        return conflictID, ErrConflict
    }

    _, err = tx.ExecContext(ctx,
        `UPDATE bookings SET court_id = ?, date = ?, start_time = ?, end_time = ?, price_cents = ? WHERE id = ?`,
        courtID, date, startTime, endTime, priceCents, bookingID,
    )
    if err != nil {
        if isLostRace(err) {
            return 0, ErrTxConflict
        }
        return 0, err
    }
    if err := tx.Commit(); err != nil {
        if isLostRace(err) {
            return 0, ErrTxConflict
        }
        return 0, err
    }
    committed = true
    return 0, nil
}

// GetByID loads one booking.  ErrNotFound when no row exists,
// ErrForbidden when it belongs to another club.
func (r *BookingRepo) GetByID(ctx context.Context, clubID, id uint64) (model.Booking, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
    b, err := scanBooking(row)
    if err != nil {
        if err == sql.ErrNoRows {
            return model.Booking{}, ErrNotFound
        }
        return model.Booking{}, err
    }
    if b.ClubID != clubID {
        return model.Booking{}, ErrForbidden
    }
    return b, nil
}

// ListByRange returns the club's bookings for an inclusive date range,
// optionally restricted to one court and one status.  Cancelled
// bookings are excluded unless status explicitly asks for them.
// Ordering is by date then start time.
func (r *BookingRepo) ListByRange(ctx context.Context, clubID uint64, startDate, endDate string, courtID uint64, status string) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE club_id = ? AND date BETWEEN ? AND ?`
    args := []any{clubID, startDate, endDate}
    if courtID != 0 {
        q += ` AND court_id = ?`
        args = append(args, courtID)
    }
    if status != "" {
        q += ` AND status = ?`
        args = append(args, status)
    } else {
        q += ` AND status <> 'CANCELLED'`
    }
    q += ` ORDER BY date, start_time, court_id`

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

// SummariesByRange maps the club's non-cancelled bookings for a date
// range into the read model consumed by the occupancy and availability
// calculators.
func (r *BookingRepo) SummariesByRange(ctx context.Context, clubID uint64, startDate, endDate string, courtID uint64) ([]schedule.BookingSummary, error) {
    q := `SELECT id, court_id, DATE_FORMAT(date, '%Y-%m-%d'), start_time, end_time, price_cents, checked_in
          FROM bookings WHERE club_id = ? AND date BETWEEN ? AND ? AND status <> 'CANCELLED'`
    args := []any{clubID, startDate, endDate}
    if courtID != 0 {
        q += ` AND court_id = ?`
        args = append(args, courtID)
    }
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]schedule.BookingSummary, 0)
    for rows.Next() {
        var s schedule.BookingSummary
        var startStr, endStr string
        if err := rows.Scan(&s.BookingID, &s.CourtID, &s.Date, &startStr, &endStr, &s.PriceCents, &s.CheckedIn); err != nil {
            return nil, err
        }
        if s.Start, err = schedule.ParseClock("startTime", startStr); err != nil {
            return nil, err
        }
        if s.End, err = schedule.ParseClock("endTime", endStr); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// Cancel flips a booking to CANCELLED.  The row remains so historical
// revenue and occupancy aggregations (which filter on status at query
// time) are unaffected.  Cancelling an already-cancelled booking is a
// no-op that still returns the booking.
func (r *BookingRepo) Cancel(ctx context.Context, clubID, id uint64) (model.Booking, error) {
    b, err := r.GetByID(ctx, clubID, id)
    if err != nil {
        return model.Booking{}, err
    }
    if b.Status != model.BookingCancelled {
        _, err = r.db.ExecContext(ctx,
            `UPDATE bookings SET status = 'CANCELLED' WHERE id = ?`, id)
        if err != nil {
            return model.Booking{}, err
        }
        b.Status = model.BookingCancelled
    }
    return b, nil
}

// CheckIn marks the player as arrived.  When markPaid is set the
// payment is captured in the same statement (onsite payment at the
// desk).
func (r *BookingRepo) CheckIn(ctx context.Context, clubID, id uint64, markPaid bool) (model.Booking, error) {
    b, err := r.GetByID(ctx, clubID, id)
    if err != nil {
        return model.Booking{}, err
    }
    if b.Status == model.BookingCancelled {
        return model.Booking{}, ErrConflict
    }
    now := time.Now().UTC()
    if markPaid {
        _, err = r.db.ExecContext(ctx,
            `UPDATE bookings SET checked_in = 1, checked_in_at = ?, payment_status = 'completed' WHERE id = ?`,
            now, id)
    } else {
        _, err = r.db.ExecContext(ctx,
            `UPDATE bookings SET checked_in = 1, checked_in_at = ? WHERE id = ?`,
            now, id)
    }
    if err != nil {
        return model.Booking{}, err
    }
    return r.GetByID(ctx, clubID, id)
}
