package api

import (
	"context"
	"net/url"

	"finview/internal/core"
)

// TransactionService wraps the /transactions endpoints.
type TransactionService struct {
	c *Client
}

func NewTransactionService(c *Client) *TransactionService {
	return &TransactionService{c: c}
}

// List fetches transactions, passing only the filter fields that are set.
func (s *TransactionService) List(ctx context.Context, f core.Filter) ([]core.Transaction, error) {
	var txs []core.Transaction
	if err := s.c.get(ctx, "/transactions", filterQuery(f), &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *TransactionService) Create(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	var tx core.Transaction
	if err := s.c.post(ctx, "/transactions", draft, &tx); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

func (s *TransactionService) Update(ctx context.Context, id string, draft core.TransactionDraft) (core.Transaction, error) {
	var tx core.Transaction
	if err := s.c.put(ctx, "/transactions/"+id, draft, &tx); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/transactions/"+id)
}

func filterQuery(f core.Filter) url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if !f.DateFrom.IsZero() {
		q.Set("dateFrom", f.DateFrom.ISO())
	}
	if !f.DateTo.IsZero() {
		q.Set("dateTo", f.DateTo.ISO())
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}
