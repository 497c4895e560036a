package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

type (
	// EntryType classifies categories and transactions as money in or money out.
	EntryType string

	// Date is a calendar date without a time component. It marshals as
	// "YYYY-MM-DD", the format the backend uses on the wire.
	Date struct {
		time.Time
	}

	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	// Session is the persisted login state: an opaque credential plus the
	// user record returned alongside it.
	Session struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	Category struct {
		ID   string    `json:"id"`
		Name string    `json:"name"`
		Type EntryType `json:"type"`
		// Count is the number of transactions in the category. Computed by
		// the backend, never written by the client.
		Count int `json:"count,omitempty"`
	}

	Transaction struct {
		ID         string    `json:"id"`
		Date       Date      `json:"date"`
		CategoryID string    `json:"categoryId"`
		Category   string    `json:"category"` // denormalized display name
		Type       EntryType `json:"type"`
		Amount     decimal.Decimal `json:"amount"`
		Note       string    `json:"note,omitempty"`
	}

	// CategoryDraft is the payload for creating or updating a category.
	CategoryDraft struct {
		Name string    `json:"name"`
		Type EntryType `json:"type"`
	}

	// TransactionDraft is the payload for creating or updating a transaction.
	TransactionDraft struct {
		Date       Date            `json:"date"`
		CategoryID string          `json:"categoryId"`
		Type       EntryType       `json:"type"`
		Amount     decimal.Decimal `json:"amount"`
		Note       string          `json:"note,omitempty"`
	}
)

var (
	ErrInvalidType     = errors.New("invalid entry type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyCategory   = errors.New("empty category")
)

func (t EntryType) Valid() bool {
	return t == Income || t == Expense
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ISO returns the wire representation (YYYY-MM-DD).
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// Display returns the human representation used in tables ("Oct 15, 2025").
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 02, 2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	// Some backends send a full timestamp for date fields.
	if len(s) > 10 {
		s = s[:10]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) < 2 {
		return ErrEmptyName
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (d CategoryDraft) Validate() error {
	return Category{Name: d.Name, Type: d.Type}.Validate()
}

func (d TransactionDraft) Validate() error {
	if d.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(d.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if !d.Type.Valid() {
		return ErrInvalidType
	}
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
