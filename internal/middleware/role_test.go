package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runWithRole(t *testing.T, role any, allowed ...string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec.Code
}

func TestRequireRole(t *testing.T) {
	if code := runWithRole(t, "ADMIN", "ADMIN"); code != http.StatusOK {
		t.Fatalf("admin on admin route: got %d, want 200", code)
	}
	if code := runWithRole(t, "STAFF", "ADMIN", "STAFF"); code != http.StatusOK {
		t.Fatalf("staff on shared route: got %d, want 200", code)
	}
	if code := runWithRole(t, "STAFF", "ADMIN"); code != http.StatusForbidden {
		t.Fatalf("staff on admin route: got %d, want 403", code)
	}
	if code := runWithRole(t, nil, "ADMIN"); code != http.StatusForbidden {
		t.Fatalf("missing role: got %d, want 403", code)
	}
	if code := runWithRole(t, 42, "ADMIN"); code != http.StatusForbidden {
		t.Fatalf("non-string role: got %d, want 403", code)
	}
}
