package storage

import "strings"

const (
	fieldSep = ','
	quote    = '"'
)

// EscapeField quotes s when it contains a comma, a double quote or a
// newline, doubling any embedded quotes. Other values are returned as is.
func EscapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		if s[i] == quote {
			b.WriteByte(quote)
		}
		b.WriteByte(s[i])
	}
	b.WriteByte(quote)
	return b.String()
}

// UnescapeField reverses EscapeField: a field wrapped in double quotes loses
// the outer pair and every doubled quote collapses to one.
func UnescapeField(s string) string {
	if len(s) < 2 || s[0] != quote || s[len(s)-1] != quote {
		return s
	}
	inner := s[1 : len(s)-1]
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == quote && i+1 < len(inner) && inner[i+1] == quote {
			i++
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}

// SplitLine splits a record on commas that are outside double quotes.
// Quote characters stay in the raw field text; UnescapeField removes them.
// Trailing carriage returns and newlines are stripped from the last field.
func SplitLine(line string) []string {
	var (
		fields []string
		cur    strings.Builder
		inQ    bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == quote:
			inQ = !inQ
			cur.WriteByte(c)
		case c == fieldSep && !inQ:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimRight(cur.String(), "\r\n"))
	return fields
}

// JoinFields escapes each field and joins them with commas.
func JoinFields(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}
	return strings.Join(escaped, string(fieldSep))
}

// continues reports whether s ends inside a quoted field, that is a field
// whose first byte is a double quote and whose closing quote has not been
// seen yet. A stray quote in the middle of a field never continues a record.
func continues(s string) bool {
	var inQ, quotedField bool
	fieldStart := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if fieldStart {
			quotedField = c == quote
			fieldStart = false
		}
		switch {
		case c == quote:
			inQ = !inQ
		case c == fieldSep && !inQ:
			fieldStart = true
		}
	}
	return inQ && quotedField
}
