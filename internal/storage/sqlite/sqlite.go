// Package sqlite implements the repository ports against a local SQLite
// file. Amounts are stored as canonical decimal text so values stay exact.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlitelib "modernc.org/sqlite"

	"budget/internal/core"
	"budget/internal/storage"
)

// SQLITE_CONSTRAINT primary result code; extended constraint codes carry it
// in the low byte.
const sqliteConstraint = 19

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := storage.MigrateSQLite(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func translate(op string, err error) error {
	var se *sqlitelib.Error
	if errors.As(err, &se) && se.Code()&0xff == sqliteConstraint {
		return storage.NewError(storage.IntegrityViolation, "data integrity violation", err)
	}
	return storage.NewError(storage.ConnectionFailure, "could not connect to database ("+op+")", err)
}

// === IncomeSourceRepository ===

func (s *Store) ListIncomeSources(ctx context.Context) ([]core.IncomeSource, error) {
	// CAST is for ordering only; the stored text is returned untouched.
	rows, err := s.db.QueryContext(ctx, `
		SELECT income_source_id, name, amount
		FROM income_source
		ORDER BY CAST(amount AS REAL) DESC
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
	row := s.db.QueryRowContext(ctx, `
		SELECT income_source_id, name, amount
		FROM income_source
		WHERE income_source_id = ?
	`, id)

	source, err := scanIncomeSource(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO income_source (name, amount)
		VALUES (?, ?)
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

	res, err := s.db.ExecContext(ctx, `
		UPDATE income_source
		SET name = ?, amount = ?
		WHERE income_source_id = ?
	`, source.Name, source.Amount.String(), source.IncomeSourceID)
	if err != nil {
		return core.IncomeSource{}, translate("update income source", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return core.IncomeSource{}, translate("update income source", err)
	}
	if affected == 0 {
		return core.IncomeSource{}, storage.NewError(storage.NotFound,
			"zero rows affected, expected at least one", nil)
	}

	return s.rereadIncomeSource(ctx, source.IncomeSourceID)
}

func (s *Store) DeleteIncomeSourceByID(ctx context.Context, id int) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM income_source
		WHERE income_source_id = ?
	`, id)
	if err != nil {
		return 0, translate("delete income source", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, translate("delete income source", err)
	}
	return int(affected), nil
}

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

func scanIncomeSource(row interface{ Scan(dest ...any) error }) (core.IncomeSource, error) {
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
	rows, err := s.db.QueryContext(ctx, `
		SELECT expense_id, name, amount
		FROM expense
		ORDER BY CAST(amount AS REAL) DESC
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
	row := s.db.QueryRowContext(ctx, `
		SELECT expense_id, name, amount
		FROM expense
		WHERE expense_id = ?
	`, id)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO expense (name, amount)
		VALUES (?, ?)
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

	res, err := s.db.ExecContext(ctx, `
		UPDATE expense
		SET name = ?, amount = ?
		WHERE expense_id = ?
	`, expense.Name, expense.Amount.String(), expense.ExpenseID)
	if err != nil {
		return core.Expense{}, translate("update expense", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return core.Expense{}, translate("update expense", err)
	}
	if affected == 0 {
		return core.Expense{}, storage.NewError(storage.NotFound,
			"zero rows affected, expected at least one", nil)
	}

	return s.rereadExpense(ctx, expense.ExpenseID)
}

func (s *Store) DeleteExpenseByID(ctx context.Context, id int) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM expense
		WHERE expense_id = ?
	`, id)
	if err != nil {
		return 0, translate("delete expense", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, translate("delete expense", err)
	}
	return int(affected), nil
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

func scanExpense(row interface{ Scan(dest ...any) error }) (core.Expense, error) {
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
