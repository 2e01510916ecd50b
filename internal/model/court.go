package model

import "time"

// Court represents a bookable padel court owned by a club.  Courts are
// never hard-deleted while bookings reference them; deactivation flips
// IsActive and hides the court from availability output.
//
// Fields:
//  ID              – primary key identifier.
//  ClubID          – owning club.
//  Name            – display name (e.g. "Cancha 1").
//  Indoor          – whether the court is covered.
//  IsActive        – active courts participate in availability and
//                    occupancy capacity; inactive ones do not.
//  HourlyRateCents – fallback price per hour in cents, used only when
//                    no pricing rule matches a slot.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Court struct {
    ID              uint64    // courts.id
    ClubID          uint64    // courts.club_id
    Name            string    // courts.name
    Indoor          bool      // courts.indoor
    IsActive        bool      // courts.is_active
    HourlyRateCents uint32    // courts.hourly_rate_cents
    CreatedAt       time.Time // courts.created_at
    UpdatedAt       time.Time // courts.updated_at
}
