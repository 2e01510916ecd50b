package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestCtxUintAcceptsClaimTypes(t *testing.T) {
	cases := []struct {
		name string
		val  any
		want uint64
	}{
		{"float64 claim", float64(42), 42},
		{"uint64", uint64(7), 7},
		{"int", 9, 9},
		{"string digits", "15", 15},
	}
	for _, tc := range cases {
		c := newTestContext(t)
		c.Set("club_id", tc.val)
		got, err := getClubID(c)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestCtxUintRejectsMissingClaim(t *testing.T) {
	c := newTestContext(t)
	if _, err := getClubID(c); err == nil {
		t.Fatal("expected error for missing club_id")
	}
	c.Set("club_id", []string{"nope"})
	if _, err := getClubID(c); err == nil {
		t.Fatal("expected error for non-numeric club_id")
	}
}

func TestValidDate(t *testing.T) {
	valid := []string{"2026-01-05", "1999-12-31"}
	for _, s := range valid {
		if !validDate(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	invalid := []string{"", "2026-1-05", "05-01-2026", "2026/01/05", "2026-01-05T10:00"}
	for _, s := range invalid {
		if validDate(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestRangeTooWide(t *testing.T) {
	// 366 dates inclusive (a leap year) is the widest allowed range.
	if rangeTooWide("2024-01-01", "2024-12-31") {
		t.Fatal("one leap year rejected")
	}
	if !rangeTooWide("2024-01-01", "2025-01-01") {
		t.Fatal("367-date range accepted")
	}
	if !rangeTooWide("0001-01-01", "9999-12-31") {
		t.Fatal("multi-millennium range accepted")
	}
	// Malformed dates are validDate's concern, not this check's.
	if rangeTooWide("bogus", "2025-01-01") {
		t.Fatal("malformed start reported as too wide")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Padel Club Roma", "padel-club-roma"},
		{"  Club  Central  ", "club-central"},
		{"Niños & Más", "ni-os-m-s"},
		{"already-slugged", "already-slugged"},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Fatalf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
