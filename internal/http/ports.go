package http

import (
	"context"

	"finview/internal/core"
)

// The server talks to the backend only through these interfaces so that
// handlers can be tested against in-memory fakes.

type AuthService interface {
	Login(ctx context.Context, email, password string) (core.Session, error)
	Register(ctx context.Context, name, email, password string) (core.Session, error)
	Logout() error
	UpdateProfile(ctx context.Context, token, name, email string) (core.User, error)
	ChangePassword(ctx context.Context, current, newPassword string) error
}

type CategoryService interface {
	List(ctx context.Context) ([]core.Category, error)
	Create(ctx context.Context, draft core.CategoryDraft) (core.Category, error)
	Update(ctx context.Context, id string, draft core.CategoryDraft) (core.Category, error)
	Delete(ctx context.Context, id string) error
}

type TransactionService interface {
	List(ctx context.Context, f core.Filter) ([]core.Transaction, error)
	Create(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error)
	Update(ctx context.Context, id string, draft core.TransactionDraft) (core.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type DashboardService interface {
	Summary(ctx context.Context) (core.Summary, error)
	Monthly(ctx context.Context, month, year int) (core.MonthlyData, error)
}

type ReportService interface {
	Monthly(ctx context.Context, month, year int) (core.MonthlyReport, error)
	Export(ctx context.Context, month, year int) ([]byte, error)
}

// SessionReader is the read side of the session store.
type SessionReader interface {
	Current() (*core.Session, error)
	IsAuthenticated() bool
}
