package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"registro/internal/core"
	"registro/internal/log"
)

// Header is the optional first line of a ledger file.
const Header = "date,amount,category,description"

// ErrIO marks failures to open, read or write a ledger file.
var ErrIO = errors.New("ledger file i/o failure")

// DecodeResult holds the rows accepted from a ledger source.
type DecodeResult struct {
	Expenses []core.Expense
	Skipped  int
}

// EncodeRecord renders one expense as a ledger line without the line break.
func EncodeRecord(e core.Expense) string {
	return e.Date.String() + string(fieldSep) +
		e.Amount.String() + string(fieldSep) +
		EscapeField(e.Category) + string(fieldSep) +
		EscapeField(e.Description)
}

// DecodeRecord parses one logical ledger line. Extra fields after the
// fourth are ignored.
func DecodeRecord(line string) (core.Expense, error) {
	fields := SplitLine(line)
	if len(fields) < 4 {
		return core.Expense{}, fmt.Errorf("%w: %d fields, want 4", core.ErrInvalidFormat, len(fields))
	}
	date, err := core.ParseDate(fields[0])
	if err != nil {
		return core.Expense{}, err
	}
	amount, err := core.ParseMoney(amountText(fields[1]))
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    UnescapeField(fields[2]),
		Description: UnescapeField(fields[3]),
	}, nil
}

// amountText unquotes an amount field. Quoting only happens when the field
// holds a comma, which in an amount can only be a thousands separator.
func amountText(raw string) string {
	unq := UnescapeField(raw)
	if unq == raw {
		return raw
	}
	return strings.ReplaceAll(unq, ",", "")
}

// Encode writes the header followed by one line per expense. Nothing is
// written when an expense would not read back, such as one with a zero date.
func Encode(w io.Writer, expenses []core.Expense) error {
	for i, e := range expenses {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return fmt.Errorf("%w: write header: %w", ErrIO, err)
	}
	for i, e := range expenses {
		if _, err := bw.WriteString(EncodeRecord(e) + "\n"); err != nil {
			return fmt.Errorf("%w: write record %d: %w", ErrIO, i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", ErrIO, err)
	}
	return nil
}

// Decode reads every record from r. A first line equal to Header is
// skipped, any other first line is data. Rows that do not decode are
// counted in Skipped, logged at debug level and otherwise ignored. Only read
// errors are returned. A nil logger discards output.
func Decode(r io.Reader, logger *log.Logger) (DecodeResult, error) {
	if logger == nil {
		logger = log.Discard()
	}
	var res DecodeResult
	br := bufio.NewReader(r)
	lineNo := 0
	add := func(rec string, line int) {
		if line == 1 && strings.TrimRight(rec, "\r\n") == Header {
			return
		}
		e, err := DecodeRecord(rec)
		if err != nil {
			res.Skipped++
			logger.Debug("row skipped", log.FieldLine, line, log.FieldError, err)
			return
		}
		res.Expenses = append(res.Expenses, e)
	}
	for {
		lines, err := readRecord(br)
		if err != nil && err != io.EOF {
			return DecodeResult{}, fmt.Errorf("%w: read: %w", ErrIO, err)
		}
		rec := strings.Join(lines, "")
		switch {
		case rec == "":
		case err == io.EOF && continues(rec):
			// Unterminated quote: treat the tail as independent lines.
			for i, l := range lines {
				add(l, lineNo+1+i)
			}
		default:
			add(rec, lineNo+1)
		}
		lineNo += len(lines)
		if err == io.EOF {
			return res, nil
		}
	}
}

// readRecord returns the physical lines of the next logical record. A line
// break is part of the record only while a field that opened with a quote
// is still unterminated. Line terminators are kept.
func readRecord(br *bufio.Reader) ([]string, error) {
	var (
		lines []string
		rec   strings.Builder
	)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
			rec.WriteString(line)
		}
		if err != nil {
			return lines, err
		}
		if !continues(rec.String()) {
			return lines, nil
		}
	}
}

// WriteFile replaces path with the encoded expenses. Data goes to a
// temporary file in the same directory which is then renamed over path.
// A nil logger discards output.
func WriteFile(path string, expenses []core.Expense, logger *log.Logger) (err error) {
	if logger == nil {
		logger = log.Discard()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %w", ErrIO, dir, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			if rerr := os.Remove(tmp.Name()); rerr != nil {
				logger.Warn("temp file not removed", log.FieldPath, tmp.Name(), log.FieldError, rerr)
			}
		}
	}()

	if err = Encode(tmp, expenses); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", ErrIO, path, err)
	}
	return nil
}

// ReadFile decodes the ledger file at path.
func ReadFile(path string, logger *log.Logger) (DecodeResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return DecodeResult{}, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	defer f.Close()
	return Decode(f, logger)
}
