package model

import "time"

// Club is the tenant of the system.  Every court, schedule, pricing
// rule and booking belongs to exactly one club.  Staff accounts are
// scoped to a club through users.club_id.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the club.
//  Slug      – URL-safe unique identifier used by clients.
//  Timezone  – IANA timezone name (e.g. "America/Mexico_City").  All
//              wall-clock times (schedules, bookings) are interpreted
//              in this zone; persisted timestamps remain UTC.
//  CreatedAt – creation timestamp.
type Club struct {
    ID        uint64    // clubs.id
    Name      string    // clubs.name
    Slug      string    // clubs.slug
    Timezone  string    // clubs.timezone
    CreatedAt time.Time // clubs.created_at
}
