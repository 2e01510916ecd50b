package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewBookingReference returns a short opaque reference shown to players
// on confirmations, e.g. "BK-9F2A41C7".  It is derived from a random
// UUID so references are unguessable; uniqueness is enforced by the
// database column.
func NewBookingReference() string {
	id := uuid.New()
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return "BK-" + hex[:8]
}
