// Package storage defines the persistence ports and the uniform repository
// error surfaced by every adapter.
package storage

import (
	"context"

	"budget/internal/core"
)

// Ports for the persistence adapters, one repository per entity kind.
// List returns rows ordered by amount descending. GetByID reports absence
// as (nil, nil), not as an error. Create and Update re-read the row after
// writing so the returned entity reflects exactly what is persisted.
type (
	IncomeSourceRepository interface {
		ListIncomeSources(ctx context.Context) ([]core.IncomeSource, error)
		GetIncomeSourceByID(ctx context.Context, id int) (*core.IncomeSource, error)
		CreateIncomeSource(ctx context.Context, source core.IncomeSource) (core.IncomeSource, error)
		UpdateIncomeSource(ctx context.Context, source core.IncomeSource) (core.IncomeSource, error)
		DeleteIncomeSourceByID(ctx context.Context, id int) (int, error)
	}

	ExpenseRepository interface {
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		GetExpenseByID(ctx context.Context, id int) (*core.Expense, error)
		CreateExpense(ctx context.Context, expense core.Expense) (core.Expense, error)
		UpdateExpense(ctx context.Context, expense core.Expense) (core.Expense, error)
		DeleteExpenseByID(ctx context.Context, id int) (int, error)
	}
)
