// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a booking is successfully created.
// It contains enough information for downstream consumers (confirmation
// messages, analytics) to act without querying the primary database.
type BookingCreatedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	Reference   string `json:"reference"`
	ClubID      uint64 `json:"club_id"`
	CourtID     uint64 `json:"court_id"`
	CourtName   string `json:"court_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	PlayerName  string `json:"player_name"`
	PlayerPhone string `json:"player_phone"`
	PriceCents  uint32 `json:"price_cents"`
	Currency    string `json:"currency"`
	CreatedAt   string `json:"created_at"`
}

// BookingCancelledEvent is published when a booking is cancelled so
// consumers can notify the player and release any payment link.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id"`
	Reference   string `json:"reference"`
	ClubID      uint64 `json:"club_id"`
	CourtID     uint64 `json:"court_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	PlayerName  string `json:"player_name"`
	PlayerPhone string `json:"player_phone"`
	CancelledAt string `json:"cancelled_at"`
}
