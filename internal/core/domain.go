package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind separates the two ledgers. It is both a category family and an
// operation type.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Period selects the operations window on the backend.
type Period string

const (
	PeriodToday    Period = "today"
	PeriodWeek     Period = "week"
	PeriodMonth    Period = "month"
	PeriodYear     Period = "year"
	PeriodAll      Period = "all"
	PeriodInterval Period = "interval"
)

// Date layouts used by the backend and by the date pickers.
const (
	ISODateLayout     = "2006-01-02"
	DisplayDateLayout = "02.01.2006"
)

type (
	User struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		LastName string `json:"lastName"`
		Email    string `json:"email,omitempty"`
	}

	Tokens struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}

	Category struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}

	// Operation is a ledger entry as returned by the backend. Category holds
	// the category title, not its id.
	Operation struct {
		ID       int    `json:"id"`
		Type     Kind   `json:"type"`
		Amount   Money  `json:"amount"`
		Date     string `json:"date"`
		Comment  string `json:"comment"`
		Category string `json:"category"`
	}

	// OperationInput is the create/update payload.
	OperationInput struct {
		Type       Kind   `json:"type"`
		Amount     Money  `json:"amount"`
		Date       string `json:"date"`
		Comment    string `json:"comment"`
		CategoryID int    `json:"category_id"`
	}

	// Filter is the operations query. Dates use the DD.MM.YYYY picker format.
	Filter struct {
		Period   Period
		DateFrom string
		DateTo   string
	}
)

var (
	ErrInvalidKind   = errors.New("invalid kind")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyTitle    = errors.New("empty title")
	ErrNoCategory    = errors.New("category not selected")
)

// ParseKind accepts "income" or "expense".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.TrimSpace(s)); k {
	case Income, Expense:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// ParsePeriod accepts any of the backend period names.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.TrimSpace(s)); p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll, PeriodInterval:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// FullName is what the layout shows in the profile area.
func (u User) FullName() string {
	return u.Name + " " + u.LastName
}

// ParseDisplayDate parses a DD.MM.YYYY date.
func ParseDisplayDate(s string) (time.Time, error) {
	t, err := time.Parse(DisplayDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseISODate parses a YYYY-MM-DD date.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// DisplayToISO converts DD.MM.YYYY to YYYY-MM-DD.
func DisplayToISO(s string) (string, error) {
	t, err := ParseDisplayDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(ISODateLayout), nil
}

// ISOToDisplay converts YYYY-MM-DD to DD.MM.YYYY. Unparseable input is
// returned unchanged.
func ISOToDisplay(s string) string {
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(DisplayDateLayout)
}

// HasInterval reports whether both interval bounds are set.
func (f Filter) HasInterval() bool {
	return f.DateFrom != "" && f.DateTo != ""
}

// Query renders the operations query string without the leading '?'.
// Dates are only sent when both are present.
func (f Filter) Query() (string, error) {
	if _, err := ParsePeriod(string(f.Period)); err != nil {
		return "", err
	}

	q := "period=" + string(f.Period)
	if !f.HasInterval() {
		return q, nil
	}

	from, err := DisplayToISO(f.DateFrom)
	if err != nil {
		return "", fmt.Errorf("date from: %w", err)
	}
	to, err := DisplayToISO(f.DateTo)
	if err != nil {
		return "", fmt.Errorf("date to: %w", err)
	}
	return q + "&dateFrom=" + from + "&dateTo=" + to, nil
}

func (in OperationInput) Validate() error {
	if !in.Type.Valid() {
		return ErrInvalidKind
	}
	if in.CategoryID <= 0 {
		return ErrNoCategory
	}
	if in.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if _, err := time.Parse(ISODateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, in.Date)
	}
	return nil
}

// FilterByKind returns the operations of the given kind, keeping order.
func FilterByKind(ops []Operation, kind Kind) []Operation {
	var out []Operation
	for _, op := range ops {
		if op.Type == kind {
			out = append(out, op)
		}
	}
	return out
}
