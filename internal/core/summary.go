package core

import "github.com/shopspring/decimal"

// NetIncome nets income sources against expenses:
// sum(income) - sum(expenses).
func NetIncome(sources []IncomeSource, expenses []Expense) decimal.Decimal {
	return Sum(sources).Sub(Sum(expenses))
}
