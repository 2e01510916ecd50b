package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking.
// Cancellation is a status transition, never a row deletion, so
// revenue and occupancy history stay intact.
type BookingStatus string

const (
    BookingConfirmed BookingStatus = "CONFIRMED"
    BookingCancelled BookingStatus = "CANCELLED"
)

// PaymentStatus enumerates the payment states tracked per booking.
type PaymentStatus string

const (
    PaymentPending   PaymentStatus = "pending"
    PaymentCompleted PaymentStatus = "completed"
    PaymentFailed    PaymentStatus = "failed"
)

// Booking records a court reservation for a date and a half-open
// [StartTime, EndTime) interval.  For a given court and date, the set
// of non-cancelled bookings must have pairwise disjoint intervals;
// the repository enforces this inside the insert transaction.
//
// Fields:
//  ID            – primary key identifier.
//  Reference     – opaque UUID handed to clients (payment links,
//                  reminders) instead of the numeric ID.
//  ClubID        – owning club.
//  CourtID       – court being booked.
//  PlayerID      – optional link to the club's player directory.
//  Date          – calendar date of play, club-local.
//  StartTime     – inclusive start, "HH:MM".
//  EndTime       – exclusive end, "HH:MM".
//  PlayerName    – contact name as entered.
//  PlayerPhone   – contact phone, required.
//  PlayerEmail   – optional contact email.
//  PriceCents    – total price in cents.
//  Currency      – ISO currency code (e.g. "MXN").
//  Status        – CONFIRMED or CANCELLED.
//  PaymentStatus – pending, completed or failed.
//  PaymentMethod – cash, terminal, transfer or link.
//  CheckedIn     – player arrived at the club.
//  CheckedInAt   – when the check-in happened (nil if never).
//  Notes         – free-form staff notes.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
    ID            uint64        // bookings.id
    Reference     string        // bookings.reference
    ClubID        uint64        // bookings.club_id
    CourtID       uint64        // bookings.court_id
    PlayerID      *uint64       // bookings.player_id (nullable)
    Date          string        // bookings.date ("YYYY-MM-DD")
    StartTime     string        // bookings.start_time
    EndTime       string        // bookings.end_time
    PlayerName    string        // bookings.player_name
    PlayerPhone   string        // bookings.player_phone
    PlayerEmail   *string       // bookings.player_email (nullable)
    PriceCents    uint32        // bookings.price_cents
    Currency      string        // bookings.currency
    Status        BookingStatus // bookings.status
    PaymentStatus PaymentStatus // bookings.payment_status
    PaymentMethod string        // bookings.payment_method
    CheckedIn     bool          // bookings.checked_in
    CheckedInAt   *time.Time    // bookings.checked_in_at (nullable)
    Notes         *string       // bookings.notes (nullable)
    CreatedAt     time.Time     // bookings.created_at
    UpdatedAt     time.Time     // bookings.updated_at
}
