package model

import "time"

// Player is the club-scoped directory entry for a person who books
// courts.  Bookings keep their own copy of the contact data and only
// weak-reference the player: removing a player never cascades into
// bookings.  Aggregate columns are maintained by the booking flow.
//
// Fields:
//  ID              – primary key identifier.
//  ClubID          – owning club; phone is unique per club.
//  Name            – display name.
//  Phone           – contact phone, the dedup key.
//  Email           – optional contact email.
//  TotalBookings   – lifetime count of confirmed bookings.
//  TotalSpentCents – lifetime spend in cents.
//  LastBookingAt   – timestamp of the most recent booking (nil if none).
//  CreatedAt       – creation timestamp.
type Player struct {
    ID              uint64     // players.id
    ClubID          uint64     // players.club_id
    Name            string     // players.name
    Phone           string     // players.phone
    Email           *string    // players.email (nullable)
    TotalBookings   uint32     // players.total_bookings
    TotalSpentCents uint64     // players.total_spent_cents
    LastBookingAt   *time.Time // players.last_booking_at (nullable)
    CreatedAt       time.Time  // players.created_at
}
