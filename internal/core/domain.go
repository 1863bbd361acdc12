package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type (
	// IncomeSource is a recurring source of monthly income.
	IncomeSource struct {
		IncomeSourceID int
		Name           string
		Amount         decimal.Decimal
	}

	// Expense is a recurring monthly expense.
	Expense struct {
		ExpenseID int
		Name      string
		Amount    decimal.Decimal
	}
)

// Transaction is the shape shared by income sources and expenses. The view
// layer pads, totals and selects both entity kinds through this interface.
type Transaction interface {
	TransactionID() int
	TransactionName() string
	TransactionAmount() decimal.Decimal
}

var ErrEmptyName = errors.New("empty name")

func (s IncomeSource) TransactionID() int                 { return s.IncomeSourceID }
func (s IncomeSource) TransactionName() string            { return s.Name }
func (s IncomeSource) TransactionAmount() decimal.Decimal { return s.Amount }

func (e Expense) TransactionID() int                 { return e.ExpenseID }
func (e Expense) TransactionName() string            { return e.Name }
func (e Expense) TransactionAmount() decimal.Decimal { return e.Amount }

func (s IncomeSource) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
