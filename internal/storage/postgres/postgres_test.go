package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"budget/internal/core"
	"budget/internal/storage"
)

// Empty names are rejected before any statement reaches the database, so
// these run against a zero-value store.
func TestWritesRejectEmptyName(t *testing.T) {
	store := &Store{}
	ctx := context.Background()
	amount, _ := core.ParseAmount("10")

	var re *storage.Error
	if _, err := store.CreateIncomeSource(ctx, core.IncomeSource{Name: "  ", Amount: amount}); !errors.As(err, &re) || re.Kind != storage.IntegrityViolation {
		t.Fatalf("create income source: expected IntegrityViolation, got %v", err)
	}
	if _, err := store.UpdateIncomeSource(ctx, core.IncomeSource{IncomeSourceID: 1, Amount: amount}); !errors.As(err, &re) || re.Kind != storage.IntegrityViolation {
		t.Fatalf("update income source: expected IntegrityViolation, got %v", err)
	}
	if _, err := store.CreateExpense(ctx, core.Expense{Name: "", Amount: amount}); !errors.As(err, &re) || re.Kind != storage.IntegrityViolation {
		t.Fatalf("create expense: expected IntegrityViolation, got %v", err)
	}
	if _, err := store.UpdateExpense(ctx, core.Expense{ExpenseID: 1, Amount: amount}); !errors.As(err, &re) || re.Kind != storage.IntegrityViolation {
		t.Fatalf("update expense: expected IntegrityViolation, got %v", err)
	}
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind storage.FailureKind
	}{
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: "23505"},
			kind: storage.IntegrityViolation,
		},
		{
			name: "not null violation",
			err:  &pgconn.PgError{Code: "23502"},
			kind: storage.IntegrityViolation,
		},
		{
			name: "wrapped constraint violation",
			err:  errors.Join(errors.New("exec"), &pgconn.PgError{Code: "23503"}),
			kind: storage.IntegrityViolation,
		},
		{
			name: "syntax error maps to connection failure",
			err:  &pgconn.PgError{Code: "42601"},
			kind: storage.ConnectionFailure,
		},
		{
			name: "network error",
			err:  errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			kind: storage.ConnectionFailure,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translate("op", tc.err)

			var re *storage.Error
			if !errors.As(got, &re) {
				t.Fatalf("expected *storage.Error, got %T", got)
			}
			if re.Kind != tc.kind {
				t.Fatalf("expected kind %v, got %v", tc.kind, re.Kind)
			}
			if !errors.Is(got, tc.err) {
				t.Fatal("cause not preserved")
			}
		})
	}
}
