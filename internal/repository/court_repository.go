package repository

import (
    "context"
    "database/sql"

    "github.com/padelhub/court-booking/internal/model"
)

// CourtRepo encapsulates database operations for courts.  Courts are
// soft-deactivated rather than deleted because bookings keep
// referencing them forever.
type CourtRepo struct {
    db *sql.DB
}

// NewCourtRepo constructs a CourtRepo given a DB handle.
func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{db: db} }

const courtColumns = `id, club_id, name, indoor, is_active, hourly_rate_cents, created_at, updated_at`

func scanCourt(row interface{ Scan(...any) error }) (model.Court, error) {
    var c model.Court
    err := row.Scan(&c.ID, &c.ClubID, &c.Name, &c.Indoor, &c.IsActive,
        &c.HourlyRateCents, &c.CreatedAt, &c.UpdatedAt)
    return c, err
}

// Create inserts a court and returns it with DB-side defaults filled.
func (r *CourtRepo) Create(ctx context.Context, clubID uint64, name string, indoor bool, hourlyRateCents uint32) (model.Court, error) {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO courts (club_id, name, indoor, is_active, hourly_rate_cents) VALUES (?, ?, ?, 1, ?)`,
        clubID, name, indoor, hourlyRateCents)
    if err != nil {
        return model.Court{}, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.Court{}, err
    }
    return r.GetByID(ctx, clubID, uint64(id))
}

// GetByID loads one court.  ErrNotFound when absent, ErrForbidden when
// owned by another club.
func (r *CourtRepo) GetByID(ctx context.Context, clubID, id uint64) (model.Court, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+courtColumns+` FROM courts WHERE id = ?`, id)
    c, err := scanCourt(row)
    if err != nil {
        if err == sql.ErrNoRows {
            return model.Court{}, ErrNotFound
        }
        return model.Court{}, err
    }
    if c.ClubID != clubID {
        return model.Court{}, ErrForbidden
    }
    return c, nil
}

// ListByClub returns the club's courts ordered by name.  When
// activeOnly is set, deactivated courts are filtered out; availability
// and occupancy capacity use that mode.
func (r *CourtRepo) ListByClub(ctx context.Context, clubID uint64, activeOnly bool) ([]model.Court, error) {
    q := `SELECT ` + courtColumns + ` FROM courts WHERE club_id = ?`
    if activeOnly {
        q += ` AND is_active = 1`
    }
    q += ` ORDER BY name, id`
    rows, err := r.db.QueryContext(ctx, q, clubID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Court, 0)
    for rows.Next() {
        c, err := scanCourt(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}

// Update edits a court's attributes.  Ownership is validated first.
func (r *CourtRepo) Update(ctx context.Context, clubID, id uint64, name string, indoor bool, hourlyRateCents uint32) (model.Court, error) {
    if _, err := r.GetByID(ctx, clubID, id); err != nil {
        return model.Court{}, err
    }
    _, err := r.db.ExecContext(ctx,
        `UPDATE courts SET name = ?, indoor = ?, hourly_rate_cents = ? WHERE id = ?`,
        name, indoor, hourlyRateCents, id)
    if err != nil {
        return model.Court{}, err
    }
    return r.GetByID(ctx, clubID, id)
}

// Deactivate removes the court from availability without touching its
// booking history.
func (r *CourtRepo) Deactivate(ctx context.Context, clubID, id uint64) (model.Court, error) {
    if _, err := r.GetByID(ctx, clubID, id); err != nil {
        return model.Court{}, err
    }
    if _, err := r.db.ExecContext(ctx, `UPDATE courts SET is_active = 0 WHERE id = ?`, id); err != nil {
        return model.Court{}, err
    }
    return r.GetByID(ctx, clubID, id)
}
