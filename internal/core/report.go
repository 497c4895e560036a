package core

import "github.com/shopspring/decimal"

// Server-computed aggregates. The client never mutates these; it only
// requests them and formats them for display.
type (
	// Summary is the all-time dashboard summary.
	Summary struct {
		TotalIncome       decimal.Decimal `json:"totalIncome"`
		TotalExpense      decimal.Decimal `json:"totalExpense"`
		Balance           decimal.Decimal `json:"balance"`
		IncomePercentage  float64         `json:"incomePercentage"`
		ExpensePercentage float64         `json:"expensePercentage"`
	}

	// MonthPoint is one month of the income-vs-expense trend.
	MonthPoint struct {
		Month   string          `json:"month"`
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
	}

	// DayPoint is one day-of-month of the daily trend.
	DayPoint struct {
		Day     string          `json:"date"`
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
	}

	// CategoryAmount is a per-category expense slice of the dashboard pie.
	CategoryAmount struct {
		Name   string          `json:"name"`
		Amount decimal.Decimal `json:"value"`
		Color  string          `json:"color,omitempty"`
	}

	// MonthlyData is the dashboard-shaped monthly aggregate.
	MonthlyData struct {
		MonthlyTrend     []MonthPoint     `json:"monthlyTrend"`
		CategoryExpenses []CategoryAmount `json:"categoryExpenses"`
	}

	ReportSummary struct {
		TotalIncome      decimal.Decimal `json:"totalIncome"`
		TotalExpense     decimal.Decimal `json:"totalExpense"`
		Balance          decimal.Decimal `json:"balance"`
		TransactionCount int             `json:"transactionCount"`
	}

	// CategoryShare is a breakdown row with its backend-computed percentage.
	CategoryShare struct {
		Name       string          `json:"name"`
		Amount     decimal.Decimal `json:"amount"`
		Color      string          `json:"color,omitempty"`
		Percentage float64         `json:"percentage"`
	}

	TopExpense struct {
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
	}

	// MonthlyReport is the report-shaped aggregate for a selected period.
	MonthlyReport struct {
		Summary           ReportSummary   `json:"summary"`
		CategoryBreakdown []CategoryShare `json:"categoryBreakdown"`
		DailyTrend        []DayPoint      `json:"dailyTrend"`
		TopExpenses       []TopExpense    `json:"topExpenses"`
	}
)
