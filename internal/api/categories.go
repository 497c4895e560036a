package api

import (
	"context"

	"finview/internal/core"
)

// CategoryService wraps the /categories endpoints, one call per operation.
type CategoryService struct {
	c *Client
}

func NewCategoryService(c *Client) *CategoryService {
	return &CategoryService{c: c}
}

func (s *CategoryService) List(ctx context.Context) ([]core.Category, error) {
	var cats []core.Category
	if err := s.c.get(ctx, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *CategoryService) Create(ctx context.Context, draft core.CategoryDraft) (core.Category, error) {
	var cat core.Category
	if err := s.c.post(ctx, "/categories", draft, &cat); err != nil {
		return core.Category{}, err
	}
	return cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, draft core.CategoryDraft) (core.Category, error) {
	var cat core.Category
	if err := s.c.put(ctx, "/categories/"+id, draft, &cat); err != nil {
		return core.Category{}, err
	}
	return cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/categories/"+id)
}
