package storage

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registro/internal/core"
	"registro/internal/log"
)

func sample() []core.Expense {
	return []core.Expense{
		core.NewExpense(core.MustDate(2024, 1, 15), core.MustMoney("42.50"), "Food", "Lunch with team"),
		core.NewExpense(core.MustDate(2024, 2, 1), core.MustMoney("1200"), "Rent, Utilities", `She said "hi"`),
		core.NewExpense(core.MustDate(2024, 3, 9), core.MustMoney("0.125"), "Misc", "first line\nsecond line"),
		core.NewExpense(core.MustDate(2024, 3, 10), core.MustMoney("3"), "", ""),
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample()[:2]))
	want := "date,amount,category,description\n" +
		"2024-01-15,42.5,Food,Lunch with team\n" +
		"2024-02-01,1200,\"Rent, Utilities\",\"She said \"\"hi\"\"\"\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := sample()
	require.NoError(t, Encode(&buf, in))

	res, err := Decode(&buf, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)
	require.Len(t, res.Expenses, len(in))
	for i := range in {
		assert.Equal(t, in[i].Date, res.Expenses[i].Date)
		assert.True(t, in[i].Amount.Equal(res.Expenses[i].Amount))
		assert.Equal(t, in[i].Category, res.Expenses[i].Category)
		assert.Equal(t, in[i].Description, res.Expenses[i].Description)
	}
}

func TestDecodeQuotedAmount(t *testing.T) {
	src := "date,amount,category,description\n" +
		"2024-01-15,42.50,Food,Lunch with team\n" +
		"2024-02-01,\"1,200.00\",Rent,\"Monthly, paid in full\"\n"
	res, err := Decode(strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 2)
	assert.Equal(t, "1200", res.Expenses[1].Amount.String())
	assert.Equal(t, "Monthly, paid in full", res.Expenses[1].Description)
}

func TestDecodeTolerance(t *testing.T) {
	src := "2024-01-15,10,Food,ok\n" + // headerless: first line is data
		"2024-01-16,20\n" + // too few fields
		"2024-13-01,5,Food,bad date\n" +
		"2024-01-17,abc,Food,bad amount\n" +
		"2024-01-18,-4,Food,negative\n" +
		"\n" +
		"2024-01-19,7,Food,with,extra,fields\r\n"
	res, err := Decode(strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 2)
	assert.Equal(t, "ok", res.Expenses[0].Description)
	assert.Equal(t, "with", res.Expenses[1].Description)
	assert.Equal(t, 5, res.Skipped)
}

func TestDecodeOnlyWellFormedLine(t *testing.T) {
	res, err := Decode(strings.NewReader("2024-05-05,12.00,Food,Pizza\n2024-05-06,3\n"), nil)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 1)
	assert.Equal(t, "Pizza", res.Expenses[0].Description)
}

func TestDecodeHeaderOnlyFirstLine(t *testing.T) {
	src := "date,amount,category,description\r\ndate,amount,category,description\n"
	res, err := Decode(strings.NewReader(src), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Expenses)
	assert.Equal(t, 1, res.Skipped)
}

func TestDecodeUnterminatedQuote(t *testing.T) {
	src := "2024-01-01,1,\"Fo,x\n2024-01-02,2,Food,kept\n"
	res, err := Decode(strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 1)
	assert.Equal(t, "kept", res.Expenses[0].Description)
}

func TestDecodeStrayQuotes(t *testing.T) {
	src := "2024-01-01,1,Misc,5\" screen\n" +
		"2024-01-02,2,Food,kept-b\n" +
		"2024-01-03,3,Food,kept-c\n" +
		"2024-01-04,4,Misc,12\" ruler\n" +
		"2024-01-05,5,Food,kept-e\n"
	res, err := Decode(strings.NewReader(src), nil)
	require.NoError(t, err)
	assert.Zero(t, res.Skipped)
	require.Len(t, res.Expenses, 5)

	want := []string{`5" screen`, "kept-b", "kept-c", `12" ruler`, "kept-e"}
	for i, e := range res.Expenses {
		assert.Equal(t, want[i], e.Description)
	}
}

func TestDecodeQuotedFieldSpansLines(t *testing.T) {
	src := "2024-01-01,1,Misc,\"first\nsecond, \"\"third\"\"\"\n" +
		"2024-01-02,2,Food,after 3\" cut\n"
	res, err := Decode(strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Len(t, res.Expenses, 2)
	assert.Equal(t, "first\nsecond, \"third\"", res.Expenses[0].Description)
	assert.Equal(t, `after 3" cut`, res.Expenses[1].Description)
}

func TestDecodeLogsSkippedRows(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelDebug, Format: log.FormatJSON, Output: &buf, Component: log.ComponentStorage})

	res, err := Decode(strings.NewReader("2024-01-01,1,A,ok\nnot a row\n"), logger)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, buf.String(), `"msg":"row skipped"`)
	assert.Contains(t, buf.String(), `"line":2`)
	assert.Contains(t, buf.String(), `"component":"storage"`)
}

func TestEncodeRejectsZeroDate(t *testing.T) {
	var buf bytes.Buffer
	in := append(sample()[:1], core.Expense{Amount: core.MustMoney("1"), Category: "Misc"})
	err := Encode(&buf, in)
	assert.ErrorIs(t, err, core.ErrInvalidDate)
	assert.Zero(t, buf.Len())
}

func TestWriteFileKeepsOldFileOnInvalidRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))

	err := WriteFile(path, []core.Expense{{Amount: core.MustMoney("1")}}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidFormat)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old content", string(raw))
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

type failingReader struct{ after string }

func (f *failingReader) Read(p []byte) (int, error) {
	if f.after == "" {
		return 0, errors.New("disk on fire")
	}
	n := copy(p, f.after)
	f.after = f.after[n:]
	return n, nil
}

func TestDecodeReadError(t *testing.T) {
	_, err := Decode(&failingReader{after: "2024-01-01,1,A,b\n"}, nil)
	assert.ErrorIs(t, err, ErrIO)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))

	require.NoError(t, WriteFile(path, sample(), nil))
	res, err := ReadFile(path, nil)
	require.NoError(t, err)
	assert.Len(t, res.Expenses, len(sample()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileBadDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "x.csv"), sample(), nil)
	assert.ErrorIs(t, err, ErrIO)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
