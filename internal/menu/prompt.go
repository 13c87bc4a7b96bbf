package menu

import (
	"fmt"
	"io"
	"strings"

	"registro/internal/core"
)

// prompt prints label and reads one line without its terminator. A final
// line without a newline is still returned; io.EOF only comes back when
// nothing was read.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptDate asks until a valid YYYY-MM-DD date is entered.
func (m *Menu) promptDate(label string) (core.Date, error) {
	text := label + " (YYYY-MM-DD): "
	for {
		s, err := m.prompt(text)
		if err != nil {
			return core.Date{}, err
		}
		if d, err := core.ParseDate(strings.TrimSpace(s)); err == nil {
			return d, nil
		}
		text = "Invalid date. Try again (YYYY-MM-DD): "
	}
}

// promptAmount asks until a non-negative number is entered.
func (m *Menu) promptAmount(label string) (core.Money, error) {
	text := label
	for {
		s, err := m.prompt(text)
		if err != nil {
			return core.Money{}, err
		}
		if a, err := core.ParseMoney(s); err == nil {
			return a, nil
		}
		text = "Invalid amount. Try again: "
	}
}

// promptPath falls back to the configured default on an empty answer.
func (m *Menu) promptPath(label string) (string, error) {
	text := label + ": "
	if m.opts.DefaultPath != "" {
		text = fmt.Sprintf("%s [%s]: ", label, m.opts.DefaultPath)
	}
	s, err := m.prompt(text)
	if err != nil {
		return "", err
	}
	if s = strings.TrimSpace(s); s == "" {
		return m.opts.DefaultPath, nil
	}
	return s, nil
}
