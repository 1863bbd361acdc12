// Package view implements the interactive presentation layer: validated
// prompting with default-value fallback, aligned transaction tables with
// running totals, and the pick-by-id selection loop.
package view

import (
	"fmt"

	"github.com/shopspring/decimal"

	"budget/internal/console"
	"budget/internal/core"
)

// The name column never shrinks below this width, so short names still
// line up under the header.
const minPadding = 10

// PromptName asks for a non-empty name. Blank input falls back to the
// default when one exists; without a default the prompt repeats until a
// value is entered.
func PromptName(c console.Console, defaultValue string) string {
	prompt := promptWithDefault("Name", defaultValue != "", defaultValue)
	for {
		entry := c.PromptString(prompt)
		if entry != "" {
			return entry
		}
		if defaultValue != "" || c.InputExhausted() {
			return defaultValue
		}
		c.PrintErrorMessage("A value is required, please try again.")
	}
}

// PromptAmount asks for an exact decimal amount. Unparsable input counts
// as blank: it falls back to the default or triggers a re-prompt, never a
// distinct format error.
func PromptAmount(c console.Console, defaultValue decimal.Decimal, hasDefault bool) decimal.Decimal {
	prompt := promptWithDefault("Amount", hasDefault, defaultValue)
	for {
		entry, ok := c.PromptDecimal(prompt)
		if ok {
			return entry
		}
		if hasDefault || c.InputExhausted() {
			return defaultValue
		}
		c.PrintErrorMessage("A value is required, please try again.")
	}
}

func promptWithDefault(label string, hasDefault bool, defaultValue any) string {
	if hasDefault {
		return fmt.Sprintf("%s[%v]: ", label, defaultValue)
	}
	return label + ": "
}

// DisplayTable renders transactions as an aligned table in the given order,
// optionally followed by a divider and the exact-decimal total.
func DisplayTable[T core.Transaction](c console.Console, title string, items []T, displayTotal bool) {
	padding := paddingLength(items)

	c.PrintBanner(fmt.Sprintf("%s\n%4s  %-*s  %s", title, "Id", padding, "Name", "Amount"))

	for _, item := range items {
		c.PrintMessage(fmt.Sprintf("%4d  %-*s  %s",
			item.TransactionID(), padding, item.TransactionName(), item.TransactionAmount()))
	}

	if displayTotal {
		c.PrintDivider()
		c.PrintMessage(fmt.Sprintf("      %-*s  %s", padding, "Total", core.Sum(items)))
	}
}

func paddingLength[T core.Transaction](items []T) int {
	padding := minPadding
	for _, item := range items {
		if n := len(item.TransactionName()); n > padding {
			padding = n
		}
	}
	return padding
}

// Select loops over the table until the user picks a valid id or cancels.
// Blank, zero and unparsable input all mean cancel; an unknown nonzero id
// re-prompts without consulting the repository.
func Select[T core.Transaction](c console.Console, title, label string, items []T) (T, bool) {
	var zero T
	for {
		DisplayTable(c, title, items, false)
		id, ok := c.PromptInt(fmt.Sprintf("Enter %s Id [0 to cancel]: ", label))
		if !ok || id == 0 {
			return zero, false
		}
		for _, item := range items {
			if item.TransactionID() == id {
				return item, true
			}
		}
		c.PrintErrorMessage("That's not a valid id. Please try again.")
	}
}

// DisplaySummary renders both tables with totals followed by the net
// income line.
func DisplaySummary(c console.Console, sources []core.IncomeSource, expenses []core.Expense) {
	DisplayTable(c, "Income Sources", sources, true)
	DisplayTable(c, "Expenses", expenses, true)

	c.PrintDivider()
	c.PrintBanner(fmt.Sprintf("      %-*s  %s", minPadding, "Net Income", core.NetIncome(sources, expenses)))
}
