package utils

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenCarriesClubClaim(t *testing.T) {
	at, err := NewAccessToken("secret", 12, 34, "STAFF", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse signed token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if got := claims["sub"].(float64); uint64(got) != 12 {
		t.Fatalf("sub = %v, want 12", got)
	}
	if got := claims["club_id"].(float64); uint64(got) != 34 {
		t.Fatalf("club_id = %v, want 34", got)
	}
	if got := claims["role"].(string); got != "STAFF" {
		t.Fatalf("role = %q, want STAFF", got)
	}
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	rt, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("raw length = %d, want 96 hex chars", len(rt.Raw))
	}
	if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) {
		t.Fatal("hash of the same raw token differs")
	}
	other, _ := NewRefreshToken(30)
	if HashRefreshRaw(rt.Raw) == HashRefreshRaw(other.Raw) {
		t.Fatal("two random tokens hashed identically")
	}
}

func TestNewBookingReferenceFormat(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ref := NewBookingReference()
		if !strings.HasPrefix(ref, "BK-") || len(ref) != 11 {
			t.Fatalf("unexpected reference format: %q", ref)
		}
		for _, r := range ref[3:] {
			if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
				t.Fatalf("non-hex character %q in %q", r, ref)
			}
		}
		if _, dup := seen[ref]; dup {
			t.Fatalf("duplicate reference %q within 100 draws", ref)
		}
		seen[ref] = struct{}{}
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
