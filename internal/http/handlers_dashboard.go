package http

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"finview/internal/core"
	applog "finview/internal/log"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	page := dashboardPage{basePage: s.base("Dashboard", "dashboard")}
	page.Greeting = "Welcome back"
	if page.UserName != "" {
		page.Greeting = "Welcome back, " + page.UserName
	}

	now := s.now()
	var summary core.Summary
	var monthly core.MonthlyData
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		summary, err = s.dashboard.Summary(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		monthly, err = s.dashboard.Monthly(ctx, int(now.Month()), now.Year())
		return err
	})
	if err := g.Wait(); err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		applog.FromContext(r.Context()).Error("Dashboard load failed",
			applog.FieldOperation, applog.OpRender, applog.FieldError, err)
		page.Error = failureMessage(err, "Failed to load dashboard data")
		s.render(w, r, "dashboard.html", page)
		return
	}

	page.TotalIncome = core.FormatINR(summary.TotalIncome)
	page.TotalExpense = core.FormatINR(summary.TotalExpense)
	page.Balance = core.FormatINR(summary.Balance)
	page.IncomeShare = core.FormatPercent(summary.IncomePercentage)
	page.ExpenseShare = core.FormatPercent(summary.ExpensePercentage)

	for _, p := range monthly.MonthlyTrend {
		page.Trend = append(page.Trend, trendRow{
			Label:   p.Month,
			Income:  core.FormatINR(p.Income),
			Expense: core.FormatINR(p.Expense),
		})
	}
	page.TopCategories = expenseBreakdown(monthly.CategoryExpenses)

	s.render(w, r, "dashboard.html", page)
}

// expenseBreakdown turns per-category amounts into bar rows scaled
// against the largest category.
func expenseBreakdown(cats []core.CategoryAmount) []breakdownRow {
	if len(cats) == 0 {
		return nil
	}
	max := cats[0].Amount
	for _, c := range cats[1:] {
		if c.Amount.GreaterThan(max) {
			max = c.Amount
		}
	}
	rows := make([]breakdownRow, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, breakdownRow{
			Name:   c.Name,
			Amount: core.FormatINR(c.Amount),
			Width:  barWidth(c.Amount, max),
			Color:  c.Color,
		})
	}
	return rows
}
