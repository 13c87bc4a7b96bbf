// Package menu is the interactive console front end of the ledger. It owns
// every prompt, retry loop and rendering decision; the ledger only ever
// sees validated values.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"registro/internal/core"
	"registro/internal/ledger"
	applog "registro/internal/log"
)

// Options configures a Menu.
type Options struct {
	// DefaultPath is used when the save or load prompt is left empty.
	DefaultPath string
	// Color enables ANSI colouring of status lines.
	Color  bool
	Logger *applog.Logger
}

type Menu struct {
	ledger ledger.Ledger
	in     *bufio.Reader
	out    io.Writer
	opts   Options
	logger *applog.Logger

	okColor   *color.Color
	failColor *color.Color
	headColor *color.Color
}

// errQuit ends the loop; io.EOF on input has the same effect.
var errQuit = errors.New("quit")

func New(l ledger.Ledger, in io.Reader, out io.Writer, opts Options) *Menu {
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	m := &Menu{
		ledger:    l,
		in:        bufio.NewReader(in),
		out:       out,
		opts:      opts,
		logger:    logger.WithComponent(applog.ComponentMenu),
		okColor:   color.New(color.FgGreen),
		failColor: color.New(color.FgRed),
		headColor: color.New(color.Bold),
	}
	for _, c := range []*color.Color{m.okColor, m.failColor, m.headColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return m
}

// Run shows the menu until the user quits or input ends.
func (m *Menu) Run() error {
	for {
		m.headColor.Fprint(m.out, "\n==== Expense Tracker ====\n")
		fmt.Fprint(m.out, "1) Add expense\n"+
			"2) View all\n"+
			"3) Filter by date range\n"+
			"4) Filter by category\n"+
			"5) Search (category/description)\n"+
			"6) Summary (totals by category & overall)\n"+
			"7) Save to CSV\n"+
			"8) Load from CSV\n"+
			"9) Quit\n")
		choice, err := m.prompt("Choose: ")
		if err != nil {
			return m.finish(err)
		}
		if err := m.dispatch(strings.TrimSpace(choice)); err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		fmt.Fprintln(m.out, "Bye!")
		return nil
	}
	return err
}

func (m *Menu) dispatch(choice string) error {
	switch choice {
	case "1":
		return m.add()
	case "2":
		return m.viewAll()
	case "3":
		return m.dateRange()
	case "4":
		return m.category()
	case "5":
		return m.search()
	case "6":
		return m.summary()
	case "7":
		return m.save()
	case "8":
		return m.load()
	case "9", "q", "Q":
		return errQuit
	default:
		m.fail("Invalid choice.")
		return nil
	}
}

func (m *Menu) add() error {
	date, err := m.promptDate("Enter date")
	if err != nil {
		return err
	}
	amount, err := m.promptAmount("Enter amount: ")
	if err != nil {
		return err
	}
	category, err := m.prompt("Enter category (e.g., Food, Rent, Travel): ")
	if err != nil {
		return err
	}
	description, err := m.prompt("Enter description: ")
	if err != nil {
		return err
	}
	m.ledger.Add(core.NewExpense(date, amount, category, description))
	m.ok("Added.")
	return nil
}

func (m *Menu) viewAll() error {
	list := m.ledger.All()
	m.table(list)
	m.totalLine("Total", list)
	return nil
}

func (m *Menu) dateRange() error {
	from, err := m.promptDate("From")
	if err != nil {
		return err
	}
	to, err := m.promptDate("To")
	if err != nil {
		return err
	}
	if from.After(to) {
		m.fail("From must be <= To.")
		return nil
	}
	list := m.ledger.FilterByDateRange(from, to)
	m.table(list)
	m.totalLine("Range total", list)
	return nil
}

func (m *Menu) category() error {
	cat, err := m.prompt("Category: ")
	if err != nil {
		return err
	}
	list := m.ledger.FilterByCategory(cat)
	m.table(list)
	m.totalLine("Category total", list)
	return nil
}

func (m *Menu) search() error {
	q, err := m.prompt("Search text: ")
	if err != nil {
		return err
	}
	list := m.ledger.Search(q)
	m.table(list)
	m.totalLine("Search total", list)
	return nil
}

func (m *Menu) summary() error {
	sum := m.ledger.Summarize(m.ledger.All())
	fmt.Fprintln(m.out, "Totals by category:")
	for _, ca := range sum.ByCategory {
		fmt.Fprintf(m.out, "  %-12s : %s\n", ca.Name, ca.Amount.Fixed())
	}
	fmt.Fprintf(m.out, "Overall total: %s\n", sum.Total.Fixed())
	return nil
}

func (m *Menu) save() error {
	path, err := m.promptPath("Save CSV path")
	if err != nil {
		return err
	}
	if err := m.ledger.ExportTo(path); err != nil {
		m.logger.Warn("save failed", applog.FieldPath, path, applog.FieldError, err)
		m.fail(fmt.Sprintf("Failed to save: %v", err))
		return nil
	}
	m.ok("Saved.")
	return nil
}

func (m *Menu) load() error {
	path, err := m.promptPath("Load CSV path")
	if err != nil {
		return err
	}
	if err := m.ledger.ImportFrom(path); err != nil {
		m.logger.Warn("load failed", applog.FieldPath, path, applog.FieldError, err)
		m.fail(fmt.Sprintf("Failed to load: %v", err))
		return nil
	}
	m.ok(fmt.Sprintf("Loaded %d expenses.", len(m.ledger.All())))
	return nil
}

func (m *Menu) ok(msg string)   { m.okColor.Fprintln(m.out, msg) }
func (m *Menu) fail(msg string) { m.failColor.Fprintln(m.out, msg) }
