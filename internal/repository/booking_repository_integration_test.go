//go:build integration

// These tests need a disposable MySQL instance:
//
//	TEST_DB_DSN="user:pass@tcp(127.0.0.1:3306)/padel_test?parseTime=true&loc=UTC" \
//	go test -tags integration ./internal/repository
//
// They create the bookings table if absent and only touch rows of
// their own club id.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/padelhub/court-booking/internal/model"
)

const bookingsDDL = `CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	reference VARCHAR(16) NOT NULL,
	club_id BIGINT UNSIGNED NOT NULL,
	court_id BIGINT UNSIGNED NOT NULL,
	player_id BIGINT UNSIGNED NULL,
	date DATE NOT NULL,
	start_time CHAR(5) NOT NULL,
	end_time CHAR(5) NOT NULL,
	player_name VARCHAR(191) NOT NULL,
	player_phone VARCHAR(32) NOT NULL,
	player_email VARCHAR(191) NULL,
	price_cents INT UNSIGNED NOT NULL,
	currency CHAR(3) NOT NULL,
	status VARCHAR(16) NOT NULL,
	payment_status VARCHAR(16) NOT NULL,
	payment_method VARCHAR(16) NOT NULL,
	checked_in TINYINT(1) NOT NULL DEFAULT 0,
	checked_in_at TIMESTAMP NULL,
	notes TEXT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_court_date (club_id, court_id, date)
)`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, err := db.Exec(bookingsDDL); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// Concurrent creates for the same court, date and interval must admit
// exactly one writer; the rest observe the winner's row inside their
// own transaction and get ErrConflict, or lose the engine race and get
// ErrTxConflict.
func TestCreateAtomicAdmitsExactlyOneOverlappingWriter(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	const clubID = 990001
	if _, err := db.Exec(`DELETE FROM bookings WHERE club_id = ?`, clubID); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	repo := NewBookingRepo(db)
	const writers = 8
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := model.Booking{
				Reference:     fmt.Sprintf("BK-RACE%03d", i),
				ClubID:        clubID,
				CourtID:       1,
				Date:          "2025-06-02",
				StartTime:     "10:00",
				EndTime:       "11:30",
				PlayerName:    fmt.Sprintf("Writer %d", i),
				PlayerPhone:   fmt.Sprintf("555000%d", i),
				PriceCents:    50000,
				Currency:      "MXN",
				Status:        model.BookingConfirmed,
				PaymentStatus: model.PaymentPending,
				PaymentMethod: "cash",
			}
			_, errs[i] = repo.CreateAtomic(context.Background(), &b)
		}(i)
	}
	wg.Wait()

	won := 0
	for i, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrConflict), errors.Is(err, ErrTxConflict):
		default:
			t.Fatalf("writer %d: unexpected error: %v", i, err)
		}
	}
	if won != 1 {
		t.Fatalf("%d writers succeeded, want exactly 1", won)
	}

	var rows int
	if err := db.QueryRow(
		`SELECT COUNT(*) FROM bookings WHERE club_id = ? AND status <> 'CANCELLED'`,
		clubID).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("%d rows persisted, want 1", rows)
	}
}
