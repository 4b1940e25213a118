package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestSQLStateHelpers(t *testing.T) {
	unique := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	if !IsUniqueViolation(unique) {
		t.Fatal("wrapped unique violation not detected")
	}
	if IsUniqueViolation(fk) {
		t.Fatal("foreign key violation reported as unique")
	}
	if !IsForeignKeyViolation(fk) {
		t.Fatal("foreign key violation not detected")
	}
	if IsUniqueViolation(errors.New("boom")) || IsUniqueViolation(nil) {
		t.Fatal("plain errors must not match")
	}
}
