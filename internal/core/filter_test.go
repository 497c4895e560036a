package core

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func tx(id, note string, t EntryType, cat string, date Date) Transaction {
	return Transaction{ID: id, Note: note, Type: t, Category: cat, Date: date, Amount: decimal.NewFromInt(100)}
}

func TestFilterEmptyIsIdentity(t *testing.T) {
	list := []Transaction{
		tx("1", "Restaurant dinner", Expense, "Food", NewDate(2025, 10, 15)),
		tx("2", "Monthly salary", Income, "Salary", NewDate(2025, 10, 14)),
	}
	got := Filter{}.Apply(list)
	if !reflect.DeepEqual(got, list) {
		t.Fatalf("empty filter changed the list: %v", got)
	}
	// Identity, not a copy: the collection flows through untouched.
	if &got[0] != &list[0] {
		t.Fatalf("empty filter should return the input unchanged")
	}
}

func TestFilterIsPure(t *testing.T) {
	list := []Transaction{
		tx("1", "Restaurant dinner", Expense, "Food", NewDate(2025, 10, 15)),
		tx("2", "Uber ride", Expense, "Transport", NewDate(2025, 10, 13)),
		tx("3", "Monthly salary", Income, "Salary", NewDate(2025, 10, 14)),
	}
	f := Filter{Type: Expense}
	first := f.Apply(list)
	second := f.Apply(list)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same filter twice gave different results")
	}
	if len(list) != 3 {
		t.Fatalf("input mutated")
	}
}

func TestFilterSearchMatchesNoteCaseInsensitive(t *testing.T) {
	list := []Transaction{
		tx("1", "Restaurant dinner", Expense, "Food", NewDate(2025, 10, 15)),
		tx("2", "Uber ride", Expense, "Transport", NewDate(2025, 10, 13)),
	}
	got := Filter{Search: "dinner"}.Apply(list)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("search=dinner got %v", got)
	}
	got = Filter{Search: "DINNER"}.Apply(list)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("search should be case-insensitive, got %v", got)
	}
}

func TestFilterFields(t *testing.T) {
	list := []Transaction{
		tx("1", "rent", Expense, "Rent", NewDate(2025, 10, 1)),
		tx("2", "salary", Income, "Salary", NewDate(2025, 10, 5)),
		tx("3", "groceries", Expense, "Food", NewDate(2025, 10, 20)),
	}
	cases := []struct {
		name string
		f    Filter
		want []string
	}{
		{"type income", Filter{Type: Income}, []string{"2"}},
		{"category", Filter{Category: "Food"}, []string{"3"}},
		{"date from", Filter{DateFrom: NewDate(2025, 10, 5)}, []string{"2", "3"}},
		{"date to", Filter{DateTo: NewDate(2025, 10, 5)}, []string{"1", "2"}},
		{"range inclusive", Filter{DateFrom: NewDate(2025, 10, 5), DateTo: NewDate(2025, 10, 5)}, []string{"2"}},
		{"combined", Filter{Type: Expense, DateFrom: NewDate(2025, 10, 2)}, []string{"3"}},
		{"no match", Filter{Category: "Travel"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.f.Apply(list)
			var ids []string
			for _, g := range got {
				ids = append(ids, g.ID)
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Fatalf("got %v, want %v", ids, tc.want)
			}
		})
	}
}

func TestPartitionCategories(t *testing.T) {
	cats := []Category{
		{ID: "1", Name: "Food", Type: Expense},
		{ID: "2", Name: "Salary", Type: Income},
	}
	income, expense := PartitionCategories(cats)
	if len(income) != 1 || income[0].ID != "2" {
		t.Fatalf("income partition wrong: %v", income)
	}
	if len(expense) != 1 || expense[0].ID != "1" {
		t.Fatalf("expense partition wrong: %v", expense)
	}
}
