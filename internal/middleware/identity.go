package middleware

// identity.go defines helper functions shared across middleware files.
// It provides an identity extraction function that reads the claims
// JWTAuth stored in the Echo context so the rate limiter can key
// buckets per user.  When no user is authenticated, "anon" is returned.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID as a string for
// use in cache and rate-limit keys.  JWT numeric claims decode as
// float64; tests may set other numeric types.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return "anon"
}
