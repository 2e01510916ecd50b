package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/padelhub/court-booking/internal/model"
)

// PlayerRepo maintains the club's player directory.  Players are
// deduplicated by phone within a club; bookings weak-reference players
// and survive them.
type PlayerRepo struct {
    db *sql.DB
}

// NewPlayerRepo returns a PlayerRepo bound to the given database.
func NewPlayerRepo(db *sql.DB) *PlayerRepo { return &PlayerRepo{db: db} }

const playerColumns = `id, club_id, name, phone, email, total_bookings, total_spent_cents, last_booking_at, created_at`

func scanPlayer(row interface{ Scan(...any) error }) (model.Player, error) {
    var p model.Player
    var email sql.NullString
    var lastAt sql.NullTime
    err := row.Scan(&p.ID, &p.ClubID, &p.Name, &p.Phone, &email,
        &p.TotalBookings, &p.TotalSpentCents, &lastAt, &p.CreatedAt)
    if err != nil {
        return model.Player{}, err
    }
    if email.Valid {
        e := email.String
        p.Email = &e
    }
    if lastAt.Valid {
        t := lastAt.Time.UTC()
        p.LastBookingAt = &t
    }
    return p, nil
}

// FindOrCreate returns the club's player with the given phone,
// creating the row when absent.  Phone numbers are stored without
// spaces; the booking flow normalizes before calling.
func (r *PlayerRepo) FindOrCreate(ctx context.Context, clubID uint64, name, phone string, email *string) (model.Player, error) {
    phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
    row := r.db.QueryRowContext(ctx,
        `SELECT `+playerColumns+` FROM players WHERE club_id = ? AND phone = ? LIMIT 1`,
        clubID, phone)
    p, err := scanPlayer(row)
    if err == nil {
        return p, nil
    }
    if err != sql.ErrNoRows {
        return model.Player{}, err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO players (club_id, name, phone, email) VALUES (?, ?, ?, ?)`,
        clubID, name, phone, email)
    if err != nil {
        // A concurrent insert of the same phone loses to the unique
        // key; re-read instead of failing the booking.
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            row := r.db.QueryRowContext(ctx,
                `SELECT `+playerColumns+` FROM players WHERE club_id = ? AND phone = ? LIMIT 1`,
                clubID, phone)
            return scanPlayer(row)
        }
        return model.Player{}, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.Player{}, err
    }
    p.ID = uint64(id)
    p.ClubID = clubID
    p.Name = name
    p.Phone = phone
    p.Email = email
    return p, nil
}

// RecordBooking bumps the player's aggregates after a confirmed
// booking.  Failures here must not fail the booking; callers log and
// continue.
func (r *PlayerRepo) RecordBooking(ctx context.Context, playerID uint64, priceCents uint32) error {
    _, err := r.db.ExecContext(ctx,
        `UPDATE players SET total_bookings = total_bookings + 1,
                total_spent_cents = total_spent_cents + ?,
                last_booking_at = UTC_TIMESTAMP()
         WHERE id = ?`, priceCents, playerID)
    return err
}

// ListByClub returns the club's players ordered by most recent booking
// first, then name.
func (r *PlayerRepo) ListByClub(ctx context.Context, clubID uint64) ([]model.Player, error) {
    const q = `SELECT ` + playerColumns + ` FROM players WHERE club_id = ?
               ORDER BY last_booking_at IS NULL, last_booking_at DESC, name`
    rows, err := r.db.QueryContext(ctx, q, clubID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Player, 0)
    for rows.Next() {
        p, err := scanPlayer(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// GetByID loads one player.  ErrNotFound when absent, ErrForbidden
// when owned by another club.
func (r *PlayerRepo) GetByID(ctx context.Context, clubID, id uint64) (model.Player, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
    p, err := scanPlayer(row)
    if err != nil {
        if err == sql.ErrNoRows {
            return model.Player{}, ErrNotFound
        }
        return model.Player{}, err
    }
    if p.ClubID != clubID {
        return model.Player{}, ErrForbidden
    }
    return p, nil
}
