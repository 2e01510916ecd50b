package model

import "time"

// PricingRule defines the hourly price for a time band of the day.
// DayOfWeek is nullable: nil means the rule applies to every day and a
// concrete value (0=Sunday .. 6=Saturday) restricts it to that day.
// A day-specific rule takes precedence over the all-days default.
// Overlapping rules for the same day scope are rejected at creation
// time; should dirty data exist anyway, the most recently created rule
// wins at read time.
//
// Fields:
//  ID         – primary key identifier.
//  ClubID     – owning club.
//  DayOfWeek  – 0..6 or nil for all days.
//  StartTime  – inclusive start of the band, "HH:MM".
//  EndTime    – exclusive end of the band, "HH:MM".
//  PriceCents – price per hour in cents.
//  CreatedAt  – creation timestamp, also the precedence tiebreaker.
type PricingRule struct {
    ID         uint64    // pricing_rules.id
    ClubID     uint64    // pricing_rules.club_id
    DayOfWeek  *int      // pricing_rules.day_of_week (nullable)
    StartTime  string    // pricing_rules.start_time
    EndTime    string    // pricing_rules.end_time
    PriceCents uint32    // pricing_rules.price_cents
    CreatedAt  time.Time // pricing_rules.created_at
}
