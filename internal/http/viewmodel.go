package http

import (
	"strconv"

	"github.com/shopspring/decimal"

	"finview/internal/core"
)

var monthNames = []string{"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}

// monthOption is an entry in the month selector on the reports page.
type monthOption struct {
	Value    int
	Name     string
	Selected bool
}

func monthOptions(selected int) []monthOption {
	opts := make([]monthOption, 0, 12)
	for m := 1; m <= 12; m++ {
		opts = append(opts, monthOption{Value: m, Name: monthNames[m-1], Selected: m == selected})
	}
	return opts
}

func yearOptions(current, selected int) []monthOption {
	opts := make([]monthOption, 0, 5)
	for y := current - 4; y <= current; y++ {
		opts = append(opts, monthOption{Value: y, Name: strconv.Itoa(y), Selected: y == selected})
	}
	return opts
}

// basePage carries what every authenticated page needs: the nav state,
// the greeting name and any transient notice or error banner.
type basePage struct {
	Title    string
	Active   string
	UserName string
	Notice   string
	Error    string
}

type authPage struct {
	Title  string
	Error  string
	Values map[string]string
	Errors map[string]string
}

type categoryRow struct {
	ID    string
	Name  string
	Count int
}

type categoriesPage struct {
	basePage
	Income  []categoryRow
	Expense []categoryRow
	Form    categoryForm
}

type categoryForm struct {
	Open   bool
	ID     string // empty for create
	Name   string
	Type   string
	Errors map[string]string
}

type transactionRow struct {
	ID       string
	Date     string
	Category string
	Type     string
	Amount   string // signed, e.g. "-₹1,500"
	Note     string
}

type transactionsPage struct {
	basePage
	Rows       []transactionRow
	Income     []core.Category
	Expense    []core.Category
	Categories []core.Category
	Filter     filterValues
	Form       transactionForm
}

type filterValues struct {
	Type     string
	Category string
	DateFrom string
	DateTo   string
	Search   string
	Active   bool
}

type transactionForm struct {
	Open       bool
	ID         string
	Date       string
	CategoryID string
	Type       string
	Amount     string
	Note       string
	Errors     map[string]string
}

type trendRow struct {
	Label   string
	Income  string
	Expense string
}

type breakdownRow struct {
	Name    string
	Amount  string
	Percent string
	Width   int
	Color   string
}

type dashboardPage struct {
	basePage
	Greeting      string
	TotalIncome   string
	TotalExpense  string
	Balance       string
	IncomeShare   string
	ExpenseShare  string
	Trend         []trendRow
	TopCategories []breakdownRow
}

type reportsPage struct {
	basePage
	Months       []monthOption
	Years        []monthOption
	Month        int
	Year         int
	PeriodName   string
	TotalIncome  string
	TotalExpense string
	Balance      string
	Count        int
	Breakdown    []breakdownRow
	Daily        []trendRow
	TopExpenses  []trendRow
}

type profilePage struct {
	basePage
	Tab           string
	Name          string
	Email         string
	ProfileErrors map[string]string
	PasswordError string
}

// confirmPage backs the confirmation step that gates every delete.
type confirmPage struct {
	basePage
	Heading   string
	Detail    string
	Action    string // POST target
	CancelURL string
	ID        string
}

// barWidth converts an amount into a percent width against the largest
// value, keeping tiny slices visible.
func barWidth(amount, max decimal.Decimal) int {
	if max.IsZero() || amount.Sign() <= 0 {
		return 0
	}
	width := int(amount.Mul(decimal.NewFromInt(100)).Div(max).Round(0).IntPart())
	if width > 0 && width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

func newTransactionRow(t core.Transaction) transactionRow {
	return transactionRow{
		ID:       t.ID,
		Date:     t.Date.Display(),
		Category: t.Category,
		Type:     string(t.Type),
		Amount:   core.SignedINR(t.Type, t.Amount),
		Note:     t.Note,
	}
}

func newCategoryRows(cats []core.Category) []categoryRow {
	rows := make([]categoryRow, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, categoryRow{ID: c.ID, Name: c.Name, Count: c.Count})
	}
	return rows
}
