// Package postgres implements the repository ports against PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"budget/internal/core"
	"budget/internal/storage"
)

// Store implements both repository ports over a pgx pool. The pool is
// capped at one connection: the application is strictly sequential and
// keeps a single long-lived connection for the process lifetime.
type Store struct {
	db *pgxpool.Pool
}

func Connect(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: pool}, nil
}

func (s *Store) Close() {
	s.db.Close()
}

// translate maps low-level pgx failures onto the uniform repository error.
// SQLSTATE class 23 covers every integrity constraint violation; anything
// else is reported as the store being unreachable.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return storage.NewError(storage.IntegrityViolation, "data integrity violation", err)
	}
	return storage.NewError(storage.ConnectionFailure, "could not connect to database ("+op+")", err)
}

// === IncomeSourceRepository ===

func (s *Store) ListIncomeSources(ctx context.Context) ([]core.IncomeSource, error) {
	rows, err := s.db.Query(ctx, `
		SELECT income_source_id, name, amount::text
		FROM income_source
		ORDER BY amount DESC
	`)
	if err != nil {
		return nil, translate("list income sources", err)
	}
	defer rows.Close()

	var sources []core.IncomeSource
	for rows.Next() {
		source, err := scanIncomeSource(rows)
		if err != nil {
			return nil, translate("scan income source", err)
		}
		sources = append(sources, source)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list income sources", err)
	}
	return sources, nil
}

func (s *Store) GetIncomeSourceByID(ctx context.Context, id int) (*core.IncomeSource, error) {
	row := s.db.QueryRow(ctx, `
		SELECT income_source_id, name, amount::text
		FROM income_source
		WHERE income_source_id = $1
	`, id)

	source, err := scanIncomeSource(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("get income source", err)
	}
	return &source, nil
}

func (s *Store) CreateIncomeSource(ctx context.Context, source core.IncomeSource) (core.IncomeSource, error) {
	if err := source.Validate(); err != nil {
		return core.IncomeSource{}, storage.NewError(storage.IntegrityViolation, "data integrity violation", err)
	}

	var id int
	err := s.db.QueryRow(ctx, `
		INSERT INTO income_source (name, amount)
		VALUES ($1, $2)
		RETURNING income_source_id
	`, source.Name, source.Amount.String()).Scan(&id)
	if err != nil {
		return core.IncomeSource{}, translate("create income source", err)
	}

	return s.rereadIncomeSource(ctx, id)
}

func (s *Store) UpdateIncomeSource(ctx context.Context, source core.IncomeSource) (core.IncomeSource, error) {
	if err := source.Validate(); err != nil {
		return core.IncomeSource{}, storage.NewError(storage.IntegrityViolation, "data integrity violation", err)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE income_source
		SET name = $1, amount = $2
		WHERE income_source_id = $3
	`, source.Name, source.Amount.String(), source.IncomeSourceID)
	if err != nil {
		return core.IncomeSource{}, translate("update income source", err)
	}
	if tag.RowsAffected() == 0 {
		return core.IncomeSource{}, storage.NewError(storage.NotFound,
			"zero rows affected, expected at least one", nil)
	}

	return s.rereadIncomeSource(ctx, source.IncomeSourceID)
}

func (s *Store) DeleteIncomeSourceByID(ctx context.Context, id int) (int, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM income_source
		WHERE income_source_id = $1
	`, id)
	if err != nil {
		return 0, translate("delete income source", err)
	}
	return int(tag.RowsAffected()), nil
}

// rereadIncomeSource returns the freshly persisted row so the caller sees
// exactly what the store holds, not merely the submitted fields.
func (s *Store) rereadIncomeSource(ctx context.Context, id int) (core.IncomeSource, error) {
	source, err := s.GetIncomeSourceByID(ctx, id)
	if err != nil {
		return core.IncomeSource{}, err
	}
	if source == nil {
		return core.IncomeSource{}, storage.NewError(storage.NotFound,
			fmt.Sprintf("income source %d vanished after write", id), nil)
	}
	return *source, nil
}

func scanIncomeSource(row pgx.Row) (core.IncomeSource, error) {
	var source core.IncomeSource
	var amount string
	if err := row.Scan(&source.IncomeSourceID, &source.Name, &amount); err != nil {
		return core.IncomeSource{}, err
	}
	parsed, ok := core.ParseAmount(amount)
	if !ok {
		return core.IncomeSource{}, fmt.Errorf("malformed amount %q", amount)
	}
	source.Amount = parsed
	return source, nil
}

// === ExpenseRepository ===

func (s *Store) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.Query(ctx, `
		SELECT expense_id, name, amount::text
		FROM expense
		ORDER BY amount DESC
	`)
	if err != nil {
		return nil, translate("list expenses", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, translate("scan expense", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list expenses", err)
	}
	return expenses, nil
}

func (s *Store) GetExpenseByID(ctx context.Context, id int) (*core.Expense, error) {
	row := s.db.QueryRow(ctx, `
		SELECT expense_id, name, amount::text
		FROM expense
		WHERE expense_id = $1
	`, id)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("get expense", err)
	}
	return &expense, nil
}

func (s *Store) CreateExpense(ctx context.Context, expense core.Expense) (core.Expense, error) {
	if err := expense.Validate(); err != nil {
		return core.Expense{}, storage.NewError(storage.IntegrityViolation, "data integrity violation", err)
	}

	var id int
	err := s.db.QueryRow(ctx, `
		INSERT INTO expense (name, amount)
		VALUES ($1, $2)
		RETURNING expense_id
	`, expense.Name, expense.Amount.String()).Scan(&id)
	if err != nil {
		return core.Expense{}, translate("create expense", err)
	}

	return s.rereadExpense(ctx, id)
}

func (s *Store) UpdateExpense(ctx context.Context, expense core.Expense) (core.Expense, error) {
	if err := expense.Validate(); err != nil {
		return core.Expense{}, storage.NewError(storage.IntegrityViolation, "data integrity violation", err)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE expense
		SET name = $1, amount = $2
		WHERE expense_id = $3
	`, expense.Name, expense.Amount.String(), expense.ExpenseID)
	if err != nil {
		return core.Expense{}, translate("update expense", err)
	}
	if tag.RowsAffected() == 0 {
		return core.Expense{}, storage.NewError(storage.NotFound,
			"zero rows affected, expected at least one", nil)
	}

	return s.rereadExpense(ctx, expense.ExpenseID)
}

func (s *Store) DeleteExpenseByID(ctx context.Context, id int) (int, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM expense
		WHERE expense_id = $1
	`, id)
	if err != nil {
		return 0, translate("delete expense", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) rereadExpense(ctx context.Context, id int) (core.Expense, error) {
	expense, err := s.GetExpenseByID(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}
	if expense == nil {
		return core.Expense{}, storage.NewError(storage.NotFound,
			fmt.Sprintf("expense %d vanished after write", id), nil)
	}
	return *expense, nil
}

func scanExpense(row pgx.Row) (core.Expense, error) {
	var expense core.Expense
	var amount string
	if err := row.Scan(&expense.ExpenseID, &expense.Name, &amount); err != nil {
		return core.Expense{}, err
	}
	parsed, ok := core.ParseAmount(amount)
	if !ok {
		return core.Expense{}, fmt.Errorf("malformed amount %q", amount)
	}
	expense.Amount = parsed
	return expense, nil
}
