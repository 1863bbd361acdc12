// Package console provides the line-based console port shared by every
// interactive component. The implementation reads and writes through
// injected streams; nothing in this package holds ambient state.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"budget/internal/core"
)

// Console is the capability surface the menus and prompts need.
type Console interface {
	PromptString(prompt string) string
	// PromptInt returns ok=false for blank or unparsable input.
	PromptInt(prompt string) (int, bool)
	// PromptDecimal returns ok=false for blank or unparsable input.
	PromptDecimal(prompt string) (decimal.Decimal, bool)
	PromptYesNo(prompt string) bool
	// MenuSelection shows numbered options and returns the chosen option
	// text. It re-prompts until a number in range is entered.
	MenuSelection(options []string) string
	PrintMessage(message string)
	PrintErrorMessage(message string)
	PrintBanner(message string)
	PrintDivider()
	PrintBlankLine()
	// InputExhausted reports that the input stream hit EOF. Retry loops
	// must stop re-prompting once this is true.
	InputExhausted() bool
}

// LineConsole implements Console over a reader/writer pair.
type LineConsole struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func New(in io.Reader, out io.Writer) *LineConsole {
	return &LineConsole{in: bufio.NewScanner(in), out: out}
}

func (c *LineConsole) readLine() string {
	if c.eof {
		return ""
	}
	if !c.in.Scan() {
		c.eof = true
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *LineConsole) PromptString(prompt string) string {
	fmt.Fprint(c.out, prompt)
	return c.readLine()
}

func (c *LineConsole) PromptInt(prompt string) (int, bool) {
	n, err := strconv.Atoi(c.PromptString(prompt))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *LineConsole) PromptDecimal(prompt string) (decimal.Decimal, bool) {
	return core.ParseAmount(c.PromptString(prompt))
}

func (c *LineConsole) InputExhausted() bool {
	return c.eof
}

func (c *LineConsole) PromptYesNo(prompt string) bool {
	for {
		switch strings.ToLower(c.PromptString(prompt)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		if c.eof {
			// Exhausted input never confirms anything.
			return false
		}
		c.PrintErrorMessage("Please answer [y/n].")
	}
}

func (c *LineConsole) MenuSelection(options []string) string {
	for {
		for i, option := range options {
			fmt.Fprintf(c.out, "%d) %s\n", i+1, option)
		}
		choice, ok := c.PromptInt("Please choose an option: ")
		if ok && choice >= 1 && choice <= len(options) {
			return options[choice-1]
		}
		if c.eof {
			// Exhausted input selects the final return/exit action so the
			// menu loops terminate.
			return options[len(options)-1]
		}
		c.PrintErrorMessage("That's not a valid option. Please try again.")
	}
}

func (c *LineConsole) PrintMessage(message string) {
	fmt.Fprintln(c.out, message)
}

func (c *LineConsole) PrintErrorMessage(message string) {
	fmt.Fprintln(c.out, message)
}

func (c *LineConsole) PrintBanner(message string) {
	c.PrintDivider()
	fmt.Fprintln(c.out, message)
	c.PrintDivider()
}

func (c *LineConsole) PrintDivider() {
	fmt.Fprintln(c.out, strings.Repeat("-", 40))
}

func (c *LineConsole) PrintBlankLine() {
	fmt.Fprintln(c.out)
}
