package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/padelhub/court-booking/internal/model"
)

// ClubRepo persists clubs (tenants).  Clubs are created once during
// registration of their first admin account and read rarely after that.
type ClubRepo struct{ DB *sql.DB }

func NewClubRepo(db *sql.DB) *ClubRepo { return &ClubRepo{DB: db} }

var ErrSlugExists = errors.New("club slug already exists")

// Create inserts a club and returns its ID.  The slug must be unique
// across all clubs; a duplicate maps to ErrSlugExists.
func (r *ClubRepo) Create(ctx context.Context, name, slug, timezone string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO clubs (name, slug, timezone) VALUES (?,?,?)",
		name, slug, timezone)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrSlugExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a club by id.
func (r *ClubRepo) GetByID(ctx context.Context, id uint64) (model.Club, error) {
	var c model.Club
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, slug, timezone, created_at FROM clubs WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Slug, &c.Timezone, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Club{}, ErrNotFound
	}
	return c, err
}
