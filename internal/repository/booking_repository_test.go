package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsLostRaceMatchesDriverErrorNumbers(t *testing.T) {
	if !isLostRace(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}) {
		t.Fatal("deadlock 1213 not recognized as lost race")
	}
	if !isLostRace(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}) {
		t.Fatal("lock wait 1205 not recognized as lost race")
	}
	if !isLostRace(fmt.Errorf("commit: %w", &mysql.MySQLError{Number: 1213})) {
		t.Fatal("wrapped driver error not recognized as lost race")
	}
}

func TestIsLostRaceIgnoresUnrelatedErrors(t *testing.T) {
	if isLostRace(nil) {
		t.Fatal("nil error reported as lost race")
	}
	if isLostRace(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}) {
		t.Fatal("duplicate key reported as lost race")
	}
	// Error text that merely contains the digits must not match.
	if isLostRace(errors.New("court 1213 unavailable after 1205 retries")) {
		t.Fatal("non-driver error with matching digits reported as lost race")
	}
}
