// Package memory implements the repository ports in process memory. It
// backs unit tests and the "memory" data backend for running without a
// database.
package memory

import (
	"context"
	"sort"
	"sync"

	"budget/internal/core"
	"budget/internal/storage"
)

type Store struct {
	mu       sync.Mutex
	nextID   int
	sources  map[int]core.IncomeSource
	expenses map[int]core.Expense
}

func New() *Store {
	return &Store{
		nextID:   1,
		sources:  map[int]core.IncomeSource{},
		expenses: map[int]core.Expense{},
	}
}

// === IncomeSourceRepository ===

func (s *Store) ListIncomeSources(_ context.Context) ([]core.IncomeSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.IncomeSource, 0, len(s.sources))
	for _, source := range s.sources {
		out = append(out, source)
	}
	sortByAmountDesc(out)
	return out, nil
}

func (s *Store) GetIncomeSourceByID(_ context.Context, id int) (*core.IncomeSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.sources[id]
	if !ok {
		return nil, nil
	}
	return &source, nil
}

func (s *Store) CreateIncomeSource(_ context.Context, source core.IncomeSource) (core.IncomeSource, error) {
	if err := source.Validate(); err != nil {
		return core.IncomeSource{}, storage.NewError(storage.IntegrityViolation, "data integrity violation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source.IncomeSourceID = s.nextID
	s.nextID++
	s.sources[source.IncomeSourceID] = source
	return source, nil
}

func (s *Store) UpdateIncomeSource(_ context.Context, source core.IncomeSource) (core.IncomeSource, error) {
	if err := source.Validate(); err != nil {
		return core.IncomeSource{}, storage.NewError(storage.IntegrityViolation, "data integrity violation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sources[source.IncomeSourceID]; !ok {
		return core.IncomeSource{}, storage.NewError(storage.NotFound,
			"zero rows affected, expected at least one", nil)
	}
	s.sources[source.IncomeSourceID] = source
	return source, nil
}

func (s *Store) DeleteIncomeSourceByID(_ context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sources[id]; !ok {
		return 0, nil
	}
	delete(s.sources, id)
	return 1, nil
}

// === ExpenseRepository ===

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Expense, 0, len(s.expenses))
	for _, expense := range s.expenses {
		out = append(out, expense)
	}
	sortByAmountDesc(out)
	return out, nil
}

func (s *Store) GetExpenseByID(_ context.Context, id int) (*core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense, ok := s.expenses[id]
	if !ok {
		return nil, nil
	}
	return &expense, nil
}

func (s *Store) CreateExpense(_ context.Context, expense core.Expense) (core.Expense, error) {
	if err := expense.Validate(); err != nil {
		return core.Expense{}, storage.NewError(storage.IntegrityViolation, "data integrity violation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expense.ExpenseID = s.nextID
	s.nextID++
	s.expenses[expense.ExpenseID] = expense
	return expense, nil
}

func (s *Store) UpdateExpense(_ context.Context, expense core.Expense) (core.Expense, error) {
	if err := expense.Validate(); err != nil {
		return core.Expense{}, storage.NewError(storage.IntegrityViolation, "data integrity violation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[expense.ExpenseID]; !ok {
		return core.Expense{}, storage.NewError(storage.NotFound,
			"zero rows affected, expected at least one", nil)
	}
	s.expenses[expense.ExpenseID] = expense
	return expense, nil
}

func (s *Store) DeleteExpenseByID(_ context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return 0, nil
	}
	delete(s.expenses, id)
	return 1, nil
}

// sortByAmountDesc orders by amount descending, id ascending on ties so the
// order is stable across calls.
func sortByAmountDesc[T core.Transaction](items []T) {
	sort.Slice(items, func(i, j int) bool {
		cmp := items[i].TransactionAmount().Cmp(items[j].TransactionAmount())
		if cmp != 0 {
			return cmp > 0
		}
		return items[i].TransactionID() < items[j].TransactionID()
	})
}
