package menu

import (
	"fmt"

	"registro/internal/core"
)

const (
	tableHeader = " ID  | Date       |     Amount | Category     | Description\n"
	tableRule   = "-----+------------+------------+--------------+-------------------------\n"
)

// table prints list with positions relative to the listing itself.
func (m *Menu) table(list []core.Expense) {
	m.headColor.Fprint(m.out, tableHeader)
	fmt.Fprint(m.out, tableRule)
	for i, e := range list {
		fmt.Fprintf(m.out, "%4d | %s | %10s | %12s | %s\n",
			i, e.Date, e.Amount.Fixed(), e.Category, e.Description)
	}
}

func (m *Menu) totalLine(label string, list []core.Expense) {
	fmt.Fprintf(m.out, "%s: %s\n", label, m.ledger.Total(list).Fixed())
}
