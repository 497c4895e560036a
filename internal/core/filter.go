package core

import "strings"

// Filter is the transient filter set of the transactions page. Empty fields
// do not constrain the result.
type Filter struct {
	Type     EntryType
	Category string
	DateFrom Date
	DateTo   Date
	Search   string
}

// IsZero reports whether no field constrains the result.
func (f Filter) IsZero() bool {
	return f.Type == "" && f.Category == "" && f.DateFrom.IsZero() && f.DateTo.IsZero() && f.Search == ""
}

// Match reports whether a single transaction passes the filter.
func (f Filter) Match(t Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if !f.DateFrom.IsZero() && t.Date.Before(f.DateFrom.Time) {
		return false
	}
	if !f.DateTo.IsZero() && t.Date.After(f.DateTo.Time) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Note), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Apply returns the transactions passing the filter, preserving order.
// The input slice is never mutated; an empty filter returns it unchanged.
func (f Filter) Apply(list []Transaction) []Transaction {
	if f.IsZero() {
		return list
	}
	out := make([]Transaction, 0, len(list))
	for _, t := range list {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// PartitionCategories splits categories into income and expense groups,
// preserving the input order within each group.
func PartitionCategories(cats []Category) (income, expense []Category) {
	for _, c := range cats {
		switch c.Type {
		case Income:
			income = append(income, c)
		case Expense:
			expense = append(expense, c)
		}
	}
	return income, expense
}
