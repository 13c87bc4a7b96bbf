package core

import (
	"errors"
	"fmt"
)

// DefaultCategory is assigned to expenses created without a category.
const DefaultCategory = "Uncategorized"

// MinYear is the earliest year a Date may carry.
const MinYear = 1900

type (
	// Date is a validated calendar day. The only way to obtain a non-zero
	// Date is through NewDate or ParseDate, so every non-zero value is valid.
	Date struct {
		year  int
		month int
		day   int
	}

	Expense struct {
		Date        Date
		Amount      Money
		Category    string
		Description string
	}
)

var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidDate   = fmt.Errorf("%w: date", ErrInvalidFormat)
	ErrInvalidAmount = fmt.Errorf("%w: amount", ErrInvalidFormat)
)

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days of month in year, or 0 for a month outside 1..12.
func DaysIn(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// NewDate creates a Date from year, month, day
func NewDate(year, month, day int) (Date, error) {
	if year < MinYear {
		return Date{}, fmt.Errorf("%w: year %d before %d", ErrInvalidDate, year, MinYear)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, fmt.Errorf("%w: day %d of %04d-%02d", ErrInvalidDate, day, year, month)
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate is NewDate for literals known to be valid; it panics otherwise.
func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate accepts exactly YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	year, ok1 := atoiDigits(s[0:4])
	month, ok2 := atoiDigits(s[5:7])
	day, ok3 := atoiDigits(s[8:10])
	if !ok1 || !ok2 || !ok3 {
		return Date{}, fmt.Errorf("%w: %q has non-numeric fields", ErrInvalidDate, s)
	}
	return NewDate(year, month, day)
}

func atoiDigits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// IsZero reports whether d is the zero Date, which never came from NewDate.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String renders d as zero-padded YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Compare returns -1, 0 or +1 ordering by year, month, day.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return sign(d.year - o.year)
	case d.month != o.month:
		return sign(d.month - o.month)
	default:
		return sign(d.day - o.day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Between reports whether from <= d <= to.
func (d Date) Between(from, to Date) bool {
	return from.Compare(d) <= 0 && d.Compare(to) <= 0
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// NewExpense builds an Expense, substituting DefaultCategory for an empty
// category. A category of only spaces is kept as entered.
func NewExpense(date Date, amount Money, category, description string) Expense {
	if category == "" {
		category = DefaultCategory
	}
	return Expense{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Description: description,
	}
}

// Validate reports whether e can be stored and read back.
func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return nil
}
