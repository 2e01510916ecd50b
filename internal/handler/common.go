package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used by the context helpers
	"regexp"  // regexp validates date parameters
	"strconv" // strconv converts strings to numeric types
	"time"    // time measures date range widths

	"github.com/labstack/echo/v4" // echo defines request context types
)

// ctxUint extracts a numeric claim stored in echo.Context by the JWT
// middleware and converts it to uint64.  Claims decoded from JSON
// arrive as float64; values set in tests may be typed differently.
func ctxUint(c echo.Context, key string) (uint64, error) {
	v := c.Get(key)
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid " + key + " in context")
}

// getUserID extracts the authenticated user's ID from the context.
func getUserID(c echo.Context) (uint64, error) { return ctxUint(c, "user_id") }

// getClubID extracts the authenticated user's club from the context.
// Every protected handler scopes its queries with this value, so a
// token can only ever reach its own club's data.
func getClubID(c echo.Context) (uint64, error) { return ctxUint(c, "club_id") }

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validDate reports whether s looks like a zero-padded "YYYY-MM-DD"
// date.  Calendar validity (month 13, Feb 30) is caught later by
// schedule.DayOfWeek / DatesBetween which parse with time.Parse.
func validDate(s string) bool { return dateRe.MatchString(s) }

// maxRangeDays caps the calendar read endpoints at one year of dates
// per request; the range expands into per-date slot and grid output,
// so it must be bounded before expansion.
const maxRangeDays = 366

// rangeTooWide reports whether the inclusive [startDate, endDate]
// range spans more than maxRangeDays dates.  Malformed dates report
// false; validDate rejects those separately.
func rangeTooWide(startDate, endDate string) bool {
	start, errS := time.Parse("2006-01-02", startDate)
	end, errE := time.Parse("2006-01-02", endDate)
	if errS != nil || errE != nil {
		return false
	}
	return end.Sub(start) >= maxRangeDays*24*time.Hour
}

// pathID parses the :id path parameter into a non-zero uint64.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
