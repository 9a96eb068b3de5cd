package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505 through wrapping", func(t *testing.T) {
		err := fmt.Errorf("insert deck: %w", &pq.Error{Code: "23505", Constraint: "deck_source_identifier_key"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(errors.New("duplicate key value")) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("select deck: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestNullInt64Conversions(t *testing.T) {
	if got := nullInt64ToPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for null, got %d", *got)
	}
	if got := nullInt64ToPtr(sql.NullInt64{Int64: 7, Valid: true}); got == nil || *got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
	if got := nullInt64ToIntPtr(sql.NullInt64{Int64: 0, Valid: true}); got == nil || *got != 0 {
		t.Fatalf("expected explicit zero to survive, got %v", got)
	}
}

func TestWithSavepoint_RunsDirectlyOutsideTx(t *testing.T) {
	called := false
	err := withSavepoint(context.Background(), nil, "ignored name!", func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected fn to run")
	}
}

func TestNullableString(t *testing.T) {
	if nullableString("") != nil {
		t.Fatalf("expected nil for empty string")
	}
	if got := nullableString("PDT"); got == nil || *got != "PDT" {
		t.Fatalf("expected pointer to PDT, got %v", got)
	}
}
