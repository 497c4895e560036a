package api

import (
	"context"
	"fmt"
	"net/http"

	"finview/internal/core"
)

// ReportService wraps the monthly report aggregate and the CSV export.
type ReportService struct {
	c *Client
}

func NewReportService(c *Client) *ReportService {
	return &ReportService{c: c}
}

// Monthly fetches the report-shaped aggregate for the selected period.
func (s *ReportService) Monthly(ctx context.Context, month, year int) (core.MonthlyReport, error) {
	var report core.MonthlyReport
	if err := s.c.get(ctx, "/dashboard/monthly", periodQuery(month, year), &report); err != nil {
		return core.MonthlyReport{}, err
	}
	return report, nil
}

// Export fetches the CSV blob for the selected period.
func (s *ReportService) Export(ctx context.Context, month, year int) ([]byte, error) {
	return s.c.doRaw(ctx, http.MethodGet, "/reports/export", periodQuery(month, year), nil)
}

// ExportFilename is the download name for an exported report.
func ExportFilename(month, year int) string {
	return fmt.Sprintf("financial-report-%d-%d.csv", year, month)
}
