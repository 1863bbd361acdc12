// Package app drives the menus: each selection dispatches to a CRUD flow
// that prompts through the view and persists through the repositories.
package app

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"budget/internal/console"
	"budget/internal/core"
	"budget/internal/storage"
	"budget/internal/view"
)

type Controller struct {
	console console.Console
	logger  *slog.Logger

	incomeSources storage.IncomeSourceRepository
	expenses      storage.ExpenseRepository
}

func NewController(c console.Console, logger *slog.Logger, sources storage.IncomeSourceRepository, expenses storage.ExpenseRepository) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		console:       c,
		logger:        logger,
		incomeSources: sources,
		expenses:      expenses,
	}
}

// Run drives the main menu until the user exits. A repository failure
// aborts the active sub-menu session only; the main menu keeps going.
func (a *Controller) Run(ctx context.Context) {
	const (
		summaryOpt  = "Display Summary"
		incomeOpt   = "Income Menu"
		expensesOpt = "Expense Menu"
		exitOpt     = "Exit"
	)
	options := []string{summaryOpt, incomeOpt, expensesOpt, exitOpt}

	a.console.PrintBlankLine()
	a.console.PrintMessage("Monthly Budget Application")

	for {
		a.console.PrintBlankLine()
		selection := a.menuSelection("Main Menu", options)

		var err error
		switch selection {
		case summaryOpt:
			if err = a.displaySummary(ctx); err != nil {
				a.console.PrintErrorMessage("DAO error - " + err.Error())
			}
		case incomeOpt:
			err = a.incomeMenu(ctx)
		case expensesOpt:
			err = a.expenseMenu(ctx)
		default:
			return
		}
		if err != nil {
			a.logger.Error("Menu session aborted", "error", err)
		}
	}
}

func (a *Controller) menuSelection(title string, options []string) string {
	a.console.PrintBanner(title)
	return a.console.MenuSelection(options)
}

func (a *Controller) displaySummary(ctx context.Context) error {
	sources, err := a.incomeSources.ListIncomeSources(ctx)
	if err != nil {
		return err
	}
	expenses, err := a.expenses.ListExpenses(ctx)
	if err != nil {
		return err
	}
	view.DisplaySummary(a.console, sources, expenses)
	return nil
}

// === Income menu ===

func (a *Controller) incomeMenu(ctx context.Context) error {
	const (
		viewOpt   = "View income"
		createOpt = "Add new income source"
		updateOpt = "Modify income source"
		deleteOpt = "Delete income source"
		returnOpt = "Return to Main Menu"
	)
	options := []string{viewOpt, createOpt, updateOpt, deleteOpt, returnOpt}

	for {
		a.console.PrintBlankLine()
		selection := a.menuSelection("Income Menu", options)
		a.console.PrintDivider()
		a.console.PrintBlankLine()

		var err error
		switch selection {
		case viewOpt:
			err = a.viewIncomeSources(ctx)
		case createOpt:
			err = a.createIncomeSource(ctx)
		case updateOpt:
			err = a.updateIncomeSource(ctx)
		case deleteOpt:
			err = a.deleteIncomeSource(ctx)
		default:
			return nil
		}
		if err != nil {
			// A failure ends this sub-menu session; no further
			// selections are accepted.
			a.console.PrintErrorMessage("DAO error - " + err.Error())
			return err
		}
	}
}

func (a *Controller) viewIncomeSources(ctx context.Context) error {
	sources, err := a.incomeSources.ListIncomeSources(ctx)
	if err != nil {
		return err
	}
	view.DisplayTable(a.console, "Income Sources", sources, true)
	return nil
}

func (a *Controller) createIncomeSource(ctx context.Context) error {
	name := view.PromptName(a.console, "")
	if name == "" {
		// Only exhausted input yields an empty name; nothing to persist.
		return nil
	}
	source := core.IncomeSource{
		Name:   name,
		Amount: view.PromptAmount(a.console, decimal.Decimal{}, false),
	}

	created, err := a.incomeSources.CreateIncomeSource(ctx, source)
	if err != nil {
		return err
	}
	a.console.PrintMessage("Income Source " + created.Name + " has been created.")
	return nil
}

func (a *Controller) updateIncomeSource(ctx context.Context) error {
	sources, err := a.incomeSources.ListIncomeSources(ctx)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		a.console.PrintErrorMessage("There are no income sources to update!")
		return nil
	}

	source, ok := view.Select(a.console, "Income Sources", "Income Source", sources)
	if !ok {
		return nil
	}

	source.Name = view.PromptName(a.console, source.Name)
	source.Amount = view.PromptAmount(a.console, source.Amount, true)

	if _, err := a.incomeSources.UpdateIncomeSource(ctx, source); err != nil {
		return err
	}
	a.console.PrintMessage("Income source has been updated.")
	return nil
}

func (a *Controller) deleteIncomeSource(ctx context.Context) error {
	sources, err := a.incomeSources.ListIncomeSources(ctx)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		a.console.PrintErrorMessage("There are no income sources to delete!")
		return nil
	}

	source, ok := view.Select(a.console, "Income Sources", "Income Source", sources)
	if !ok {
		return nil
	}

	if !a.console.PromptYesNo("Are you sure you want to delete this income source? [y/n] ") {
		return nil
	}

	if _, err := a.incomeSources.DeleteIncomeSourceByID(ctx, source.IncomeSourceID); err != nil {
		return err
	}
	a.console.PrintMessage("Income source has been deleted.")
	return nil
}

// === Expense menu ===

func (a *Controller) expenseMenu(ctx context.Context) error {
	const (
		viewOpt   = "View expenses"
		createOpt = "Add new expense"
		updateOpt = "Modify expense"
		deleteOpt = "Delete expense"
		returnOpt = "Return to Main Menu"
	)
	options := []string{viewOpt, createOpt, updateOpt, deleteOpt, returnOpt}

	for {
		a.console.PrintBlankLine()
		selection := a.menuSelection("Expense Menu", options)
		a.console.PrintDivider()
		a.console.PrintBlankLine()

		var err error
		switch selection {
		case viewOpt:
			err = a.viewExpenses(ctx)
		case createOpt:
			err = a.createExpense(ctx)
		case updateOpt:
			err = a.updateExpense(ctx)
		case deleteOpt:
			err = a.deleteExpense(ctx)
		default:
			return nil
		}
		if err != nil {
			a.console.PrintErrorMessage("DAO error - " + err.Error())
			return err
		}
	}
}

func (a *Controller) viewExpenses(ctx context.Context) error {
	expenses, err := a.expenses.ListExpenses(ctx)
	if err != nil {
		return err
	}
	view.DisplayTable(a.console, "Expenses", expenses, true)
	return nil
}

func (a *Controller) createExpense(ctx context.Context) error {
	name := view.PromptName(a.console, "")
	if name == "" {
		return nil
	}
	expense := core.Expense{
		Name:   name,
		Amount: view.PromptAmount(a.console, decimal.Decimal{}, false),
	}

	created, err := a.expenses.CreateExpense(ctx, expense)
	if err != nil {
		return err
	}
	a.console.PrintMessage("Expense " + created.Name + " has been created.")
	return nil
}

func (a *Controller) updateExpense(ctx context.Context) error {
	expenses, err := a.expenses.ListExpenses(ctx)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		a.console.PrintErrorMessage("There are no expenses to update!")
		return nil
	}

	expense, ok := view.Select(a.console, "Expenses", "Expense", expenses)
	if !ok {
		return nil
	}

	expense.Name = view.PromptName(a.console, expense.Name)
	expense.Amount = view.PromptAmount(a.console, expense.Amount, true)

	if _, err := a.expenses.UpdateExpense(ctx, expense); err != nil {
		return err
	}
	a.console.PrintMessage("Expense has been updated.")
	return nil
}

func (a *Controller) deleteExpense(ctx context.Context) error {
	expenses, err := a.expenses.ListExpenses(ctx)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		a.console.PrintErrorMessage("There are no expenses to delete!")
		return nil
	}

	expense, ok := view.Select(a.console, "Expenses", "Expense", expenses)
	if !ok {
		return nil
	}

	if !a.console.PromptYesNo("Are you sure you want to delete this expense? [y/n] ") {
		return nil
	}

	if _, err := a.expenses.DeleteExpenseByID(ctx, expense.ExpenseID); err != nil {
		return err
	}
	a.console.PrintMessage("Expense has been deleted.")
	return nil
}
