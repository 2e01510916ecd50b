package repository

import (
    "context"
    "database/sql"

    "github.com/padelhub/court-booking/internal/model"
    "github.com/padelhub/court-booking/internal/schedule"
)

// PricingRepo persists pricing rules.  Overlap between rules with the
// same day scope is a data-entry error and is rejected here at write
// time with ErrConflict, rather than silently resolved at read time.
type PricingRepo struct {
    db *sql.DB
}

// NewPricingRepo returns a PricingRepo bound to the given database.
func NewPricingRepo(db *sql.DB) *PricingRepo { return &PricingRepo{db: db} }

const pricingColumns = `id, club_id, day_of_week, start_time, end_time, price_cents, created_at`

func scanRule(row interface{ Scan(...any) error }) (model.PricingRule, error) {
    var p model.PricingRule
    var dow sql.NullInt64
    err := row.Scan(&p.ID, &p.ClubID, &dow, &p.StartTime, &p.EndTime, &p.PriceCents, &p.CreatedAt)
    if err != nil {
        return model.PricingRule{}, err
    }
    if dow.Valid {
        d := int(dow.Int64)
        p.DayOfWeek = &d
    }
    return p, nil
}

// ListByClub returns all rules ordered by day scope then start time,
// the order the settings screen displays them in.
func (r *PricingRepo) ListByClub(ctx context.Context, clubID uint64) ([]model.PricingRule, error) {
    const q = `SELECT ` + pricingColumns + ` FROM pricing_rules WHERE club_id = ?
               ORDER BY day_of_week IS NULL, day_of_week, start_time`
    rows, err := r.db.QueryContext(ctx, q, clubID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.PricingRule, 0)
    for rows.Next() {
        p, err := scanRule(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// findOverlap returns the ID of an existing rule whose time band
// overlaps the candidate within the same day scope (NULL scope only
// collides with NULL; a day-specific rule may coexist with the
// all-days default since precedence resolves them at read time).
func (r *PricingRepo) findOverlap(ctx context.Context, clubID uint64, dayOfWeek *int, startTime, endTime string, excludeID uint64) (uint64, error) {
    q := `SELECT id FROM pricing_rules
          WHERE club_id = ? AND start_time < ? AND end_time > ? AND id <> ?`
    args := []any{clubID, endTime, startTime, excludeID}
    if dayOfWeek == nil {
        q += ` AND day_of_week IS NULL`
    } else {
        q += ` AND day_of_week = ?`
        args = append(args, *dayOfWeek)
    }
    q += ` LIMIT 1`
    var id uint64
    err := r.db.QueryRowContext(ctx, q, args...).Scan(&id)
    if err == sql.ErrNoRows {
        return 0, nil
    }
    return id, err
}

// Create validates the time band, rejects overlaps within the day
// scope, and inserts the rule.  Returns the overlapping rule ID with
// ErrConflict when validation at write time catches the ambiguity the
// resolver would otherwise have to break arbitrarily.
func (r *PricingRepo) Create(ctx context.Context, clubID uint64, dayOfWeek *int, startTime, endTime string, priceCents uint32) (model.PricingRule, uint64, error) {
    start, err := schedule.ParseClock("startTime", startTime)
    if err != nil {
        return model.PricingRule{}, 0, err
    }
    end, err := schedule.ParseClock("endTime", endTime)
    if err != nil {
        return model.PricingRule{}, 0, err
    }
    if err := schedule.ValidateInterval(start, end); err != nil {
        return model.PricingRule{}, 0, err
    }

    overlapID, err := r.findOverlap(ctx, clubID, dayOfWeek, startTime, endTime, 0)
    if err != nil {
        return model.PricingRule{}, 0, err
    }
    if overlapID != 0 {
        return model.PricingRule{}, overlapID, ErrConflict
    }

    res, err := r.db.ExecContext(ctx,
        `INSERT INTO pricing_rules (club_id, day_of_week, start_time, end_time, price_cents) VALUES (?, ?, ?, ?, ?)`,
        clubID, dayOfWeek, startTime, endTime, priceCents)
    if err != nil {
        return model.PricingRule{}, 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.PricingRule{}, 0, err
    }
    rule, err := r.getByID(ctx, clubID, uint64(id))
    return rule, 0, err
}

// Update edits a rule under the same overlap validation as Create.
func (r *PricingRepo) Update(ctx context.Context, clubID, id uint64, dayOfWeek *int, startTime, endTime string, priceCents uint32) (model.PricingRule, uint64, error) {
    if _, err := r.getByID(ctx, clubID, id); err != nil {
        return model.PricingRule{}, 0, err
    }
    start, err := schedule.ParseClock("startTime", startTime)
    if err != nil {
        return model.PricingRule{}, 0, err
    }
    end, err := schedule.ParseClock("endTime", endTime)
    if err != nil {
        return model.PricingRule{}, 0, err
    }
    if err := schedule.ValidateInterval(start, end); err != nil {
        return model.PricingRule{}, 0, err
    }
    overlapID, err := r.findOverlap(ctx, clubID, dayOfWeek, startTime, endTime, id)
    if err != nil {
        return model.PricingRule{}, 0, err
    }
    if overlapID != 0 {
        return model.PricingRule{}, overlapID, ErrConflict
    }
    _, err = r.db.ExecContext(ctx,
        `UPDATE pricing_rules SET day_of_week = ?, start_time = ?, end_time = ?, price_cents = ? WHERE id = ?`,
        dayOfWeek, startTime, endTime, priceCents, id)
    if err != nil {
        return model.PricingRule{}, 0, err
    }
    rule, err := r.getByID(ctx, clubID, id)
    return rule, 0, err
}

// Delete removes a rule.  Rules carry no history, so unlike courts and
// bookings a hard delete is safe.
func (r *PricingRepo) Delete(ctx context.Context, clubID, id uint64) error {
    if _, err := r.getByID(ctx, clubID, id); err != nil {
        return err
    }
    _, err := r.db.ExecContext(ctx, `DELETE FROM pricing_rules WHERE id = ?`, id)
    return err
}

func (r *PricingRepo) getByID(ctx context.Context, clubID, id uint64) (model.PricingRule, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+pricingColumns+` FROM pricing_rules WHERE id = ?`, id)
    p, err := scanRule(row)
    if err != nil {
        if err == sql.ErrNoRows {
            return model.PricingRule{}, ErrNotFound
        }
        return model.PricingRule{}, err
    }
    if p.ClubID != clubID {
        return model.PricingRule{}, ErrForbidden
    }
    return p, nil
}
