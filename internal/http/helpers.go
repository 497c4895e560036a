package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"finview/internal/api"
	"finview/internal/core"
)

// sanitizeInput trims whitespace and strips control characters except
// tab, newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parsePeriod reads month/year query params, defaulting to the current
// period and clamping out-of-range months.
func parsePeriod(r *http.Request, now time.Time) (month, year int) {
	month = int(now.Month())
	year = now.Year()
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y >= 2000 && y <= 2100 {
			year = y
		}
	}
	return month, year
}

// filterFromQuery builds the transaction filter out of the list page's
// query params. Blank params stay unset.
func filterFromQuery(r *http.Request) core.Filter {
	q := r.URL.Query()
	f := core.Filter{
		Category: sanitizeInput(q.Get("category")),
		Search:   sanitizeInput(q.Get("search")),
	}
	switch q.Get("type") {
	case string(core.Income):
		f.Type = core.Income
	case string(core.Expense):
		f.Type = core.Expense
	}
	if d, err := core.ParseDate(q.Get("dateFrom")); err == nil {
		f.DateFrom = d
	}
	if d, err := core.ParseDate(q.Get("dateTo")); err == nil {
		f.DateTo = d
	}
	return f
}

func filterToValues(f core.Filter) filterValues {
	v := filterValues{
		Type:     string(f.Type),
		Category: f.Category,
		Search:   f.Search,
		Active:   !f.IsZero(),
	}
	if !f.DateFrom.IsZero() {
		v.DateFrom = f.DateFrom.ISO()
	}
	if !f.DateTo.IsZero() {
		v.DateTo = f.DateTo.ISO()
	}
	return v
}

// failureMessage maps a backend error to the banner text for a page,
// preferring the backend's own message when one came through.
func failureMessage(err error, fallback string) string {
	return api.UserMessage(err, fallback)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
