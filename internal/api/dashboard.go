package api

import (
	"context"
	"net/url"
	"strconv"

	"finview/internal/core"
)

// DashboardService wraps the read-only /dashboard aggregates.
type DashboardService struct {
	c *Client
}

func NewDashboardService(c *Client) *DashboardService {
	return &DashboardService{c: c}
}

func (s *DashboardService) Summary(ctx context.Context) (core.Summary, error) {
	var sum core.Summary
	if err := s.c.get(ctx, "/dashboard/summary", nil, &sum); err != nil {
		return core.Summary{}, err
	}
	return sum, nil
}

func (s *DashboardService) Monthly(ctx context.Context, month, year int) (core.MonthlyData, error) {
	var data core.MonthlyData
	if err := s.c.get(ctx, "/dashboard/monthly", periodQuery(month, year), &data); err != nil {
		return core.MonthlyData{}, err
	}
	return data, nil
}

func periodQuery(month, year int) url.Values {
	q := url.Values{}
	q.Set("month", strconv.Itoa(month))
	q.Set("year", strconv.Itoa(year))
	return q
}
