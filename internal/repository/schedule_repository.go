package repository

import (
    "context"
    "database/sql"

    "github.com/padelhub/court-booking/internal/model"
    "github.com/padelhub/court-booking/internal/schedule"
)

// ScheduleRepo persists the club's weekly operating hours: one row per
// day of week.  The settings screen always writes the full week, so
// Replace is an upsert of seven rows inside one transaction.
type ScheduleRepo struct {
    db *sql.DB
}

// NewScheduleRepo returns a ScheduleRepo bound to the given database.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// Week returns the club's schedule keyed by day of week.  Days without
// a row are treated as closed by callers.
func (r *ScheduleRepo) Week(ctx context.Context, clubID uint64) (map[int]model.Schedule, error) {
    const q = `SELECT id, club_id, day_of_week, open_time, close_time, closed
               FROM schedules WHERE club_id = ?`
    rows, err := r.db.QueryContext(ctx, q, clubID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    week := make(map[int]model.Schedule, 7)
    for rows.Next() {
        var s model.Schedule
        if err := rows.Scan(&s.ID, &s.ClubID, &s.DayOfWeek, &s.OpenTime, &s.CloseTime, &s.Closed); err != nil {
            return nil, err
        }
        week[s.DayOfWeek] = s
    }
    return week, rows.Err()
}

// Replace validates and upserts the full week in one transaction so a
// half-written schedule is never observable.  Open days must carry a
// well-formed open < close interval.
func (r *ScheduleRepo) Replace(ctx context.Context, clubID uint64, days []model.Schedule) error {
    seen := make(map[int]bool, 7)
    for _, d := range days {
        if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
            return &schedule.ValidationError{Field: "dayOfWeek", Reason: "must be 0..6"}
        }
        if seen[d.DayOfWeek] {
            return &schedule.ValidationError{Field: "dayOfWeek", Reason: "duplicate day"}
        }
        seen[d.DayOfWeek] = true
        if d.Closed {
            continue
        }
        open, err := schedule.ParseClock("openTime", d.OpenTime)
        if err != nil {
            return err
        }
        close, err := schedule.ParseClock("closeTime", d.CloseTime)
        if err != nil {
            return err
        }
        if close <= open {
            return &schedule.ValidationError{Field: "closeTime", Reason: "close must be after open"}
        }
    }

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if _, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE club_id = ?`, clubID); err != nil {
        return err
    }
    for _, d := range days {
        open, close := d.OpenTime, d.CloseTime
        if d.Closed {
            open, close = "00:00", "00:00"
        }
        if _, err := tx.ExecContext(ctx,
            `INSERT INTO schedules (club_id, day_of_week, open_time, close_time, closed) VALUES (?, ?, ?, ?, ?)`,
            clubID, d.DayOfWeek, open, close, d.Closed); err != nil {
            return err
        }
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
