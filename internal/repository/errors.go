// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that a candidate booking overlaps an
// existing non-cancelled one, while ErrTxConflict marks the same
// outcome detected only when the insert transaction lost a race with
// a concurrent writer.
package repository

import "errors"

// ErrNotFound is returned when a referenced court, booking, rule or
// player does not exist (or is inactive where activity is required).
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by another club. Handlers should translate this into
// an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a booking mutation would overlap an
// existing non-cancelled booking on the same court, or when a pricing
// rule would overlap an existing rule for the same day scope.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrTxConflict is returned when the atomic insert failed because a
// concurrent conflicting write won the race (deadlock or lock-wait
// rollback). Callers treat it like ErrConflict but it is logged
// separately so race frequency stays diagnosable.
var ErrTxConflict = errors.New("transaction conflict")
