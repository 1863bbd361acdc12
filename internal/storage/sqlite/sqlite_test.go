package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"budget/internal/core"
	"budget/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndGetIncomeSource(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	parsed, _ := core.ParseAmount("999.99")
	created, err := store.CreateIncomeSource(ctx, core.IncomeSource{
		Name:   "Mobile Pharmaceuticals",
		Amount: parsed,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.IncomeSourceID == 0 {
		t.Fatal("id not assigned on create, remained 0")
	}
	if created.Name != "Mobile Pharmaceuticals" || created.Amount.String() != "999.99" {
		t.Fatalf("created row mismatch: %+v", created)
	}

	got, err := store.GetIncomeSourceByID(ctx, created.IncomeSourceID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != created.Name || got.Amount.String() != "999.99" {
		t.Fatalf("re-read mismatch: %+v", got)
	}
}

func TestCreateExpenseKeepsAmountExact(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	parsed, _ := core.ParseAmount("45.99")
	created, err := store.CreateExpense(ctx, core.Expense{Name: "Balloons", Amount: parsed})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetExpenseByID(ctx, created.ExpenseID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("created expense not found")
	}
	// Exactly 45.99, never 45.98999... from binary floating point.
	if got.Name != "Balloons" || got.Amount.String() != "45.99" {
		t.Fatalf("expected Balloons 45.99, got %s %s", got.Name, got.Amount)
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	parsed, _ := core.ParseAmount("10")
	_, err := store.CreateIncomeSource(ctx, core.IncomeSource{Name: "  ", Amount: parsed})
	var re *storage.Error
	if !errors.As(err, &re) || re.Kind != storage.IntegrityViolation {
		t.Fatalf("expected IntegrityViolation for blank name, got %v", err)
	}

	_, err = store.CreateExpense(ctx, core.Expense{Name: "", Amount: parsed})
	if !errors.As(err, &re) || re.Kind != storage.IntegrityViolation {
		t.Fatalf("expected IntegrityViolation for empty name, got %v", err)
	}

	sources, err := store.ListIncomeSources(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sources) != 0 {
		t.Fatalf("rejected create persisted a row: %+v", sources)
	}
}

func TestUpdateRejectsEmptyName(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	parsed, _ := core.ParseAmount("1000.45")
	created, err := store.CreateIncomeSource(ctx, core.IncomeSource{Name: "Other", Amount: parsed})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Name = ""
	var re *storage.Error
	if _, err := store.UpdateIncomeSource(ctx, created); !errors.As(err, &re) || re.Kind != storage.IntegrityViolation {
		t.Fatalf("expected IntegrityViolation for empty name, got %v", err)
	}

	got, err := store.GetIncomeSourceByID(ctx, created.IncomeSourceID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "Other" {
		t.Fatalf("rejected update changed the row: %+v", got)
	}
}

func TestListIncomeSourcesOrderedByAmountDesc(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, row := range []struct{ name, amount string }{
		{"Other", "1000.45"},
		{"Salary", "5000.21"},
	} {
		parsed, _ := core.ParseAmount(row.amount)
		if _, err := store.CreateIncomeSource(ctx, core.IncomeSource{Name: row.name, Amount: parsed}); err != nil {
			t.Fatalf("create %s: %v", row.name, err)
		}
	}

	sources, err := store.ListIncomeSources(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].Name != "Salary" || sources[1].Name != "Other" {
		t.Fatalf("expected Salary before Other, got %s, %s", sources[0].Name, sources[1].Name)
	}
}

func TestGetAbsentReturnsNil(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GetIncomeSourceByID(context.Background(), 12345)
	if err != nil {
		t.Fatalf("absence must not be an error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent row, got %+v", got)
	}
}

func TestUpdateIncomeSource(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	parsed, _ := core.ParseAmount("1000.45")
	created, err := store.CreateIncomeSource(ctx, core.IncomeSource{Name: "Other", Amount: parsed})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Name = "Some Source"
	created.Amount, _ = core.ParseAmount("9999.99")

	updated, err := store.UpdateIncomeSource(ctx, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Some Source" || updated.Amount.String() != "9999.99" {
		t.Fatalf("updated row mismatch: %+v", updated)
	}
}

func TestUpdateMissingExpenseSignalsNotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	parsed, _ := core.ParseAmount("10")
	_, err := store.UpdateExpense(ctx, core.Expense{ExpenseID: 999, Name: "Ghost", Amount: parsed})
	if !storage.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	// A failed update must not create the row.
	got, err := store.GetExpenseByID(ctx, 999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("failed update materialized a row: %+v", got)
	}
}

func TestDeleteExpense(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	parsed, _ := core.ParseAmount("45.99")
	created, err := store.CreateExpense(ctx, core.Expense{Name: "Balloons", Amount: parsed})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	count, err := store.DeleteExpenseByID(ctx, created.ExpenseID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row removed, got %d", count)
	}

	got, err := store.GetExpenseByID(ctx, created.ExpenseID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted expense still retrievable: %+v", got)
	}

	count, err = store.DeleteExpenseByID(ctx, created.ExpenseID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 rows removed on second delete, got %d", count)
	}
}
