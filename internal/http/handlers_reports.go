package http

import (
	"net/http"
	"strconv"

	"finview/internal/api"
	"finview/internal/core"
	applog "finview/internal/log"
)

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	now := s.now()
	month, year := parsePeriod(r, now)

	page := reportsPage{
		basePage:   s.base("Reports", "reports"),
		Months:     monthOptions(month),
		Years:      yearOptions(now.Year(), year),
		Month:      month,
		Year:       year,
		PeriodName: monthName(month) + " " + strconv.Itoa(year),
	}

	report, err := s.reports.Monthly(r.Context(), month, year)
	if err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		applog.FromContext(r.Context()).Error("Report load failed",
			applog.FieldMonth, month, applog.FieldYear, year, applog.FieldError, err)
		page.Error = failureMessage(err, "Failed to load report")
		s.render(w, r, "reports.html", page)
		return
	}

	page.TotalIncome = core.FormatINR(report.Summary.TotalIncome)
	page.TotalExpense = core.FormatINR(report.Summary.TotalExpense)
	page.Balance = core.FormatINR(report.Summary.Balance)
	page.Count = report.Summary.TransactionCount

	for _, share := range report.CategoryBreakdown {
		width := int(share.Percentage + 0.5)
		if width > 100 {
			width = 100
		}
		page.Breakdown = append(page.Breakdown, breakdownRow{
			Name:    share.Name,
			Amount:  core.FormatINR(share.Amount),
			Percent: core.FormatPercent(share.Percentage),
			Width:   width,
			Color:   share.Color,
		})
	}
	for _, d := range report.DailyTrend {
		page.Daily = append(page.Daily, trendRow{
			Label:   d.Day,
			Income:  core.FormatINR(d.Income),
			Expense: core.FormatINR(d.Expense),
		})
	}
	for _, t := range report.TopExpenses {
		page.TopExpenses = append(page.TopExpenses, trendRow{
			Label:   t.Category,
			Expense: core.FormatINR(t.Amount),
		})
	}

	s.render(w, r, "reports.html", page)
}

// handleReportExport streams the backend's CSV for the selected period
// as a file download.
func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	month, year := parsePeriod(r, s.now())
	data, err := s.reports.Export(r.Context(), month, year)
	if err != nil {
		if s.expireSession(w, r, err) {
			return
		}
		applog.FromContext(r.Context()).Error("Report export failed",
			applog.FieldOperation, applog.OpExport,
			applog.FieldMonth, month, applog.FieldYear, year, applog.FieldError, err)
		http.Error(w, "Failed to export report", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+api.ExportFilename(month, year)+`"`)
	_, _ = w.Write(data)
}
