package dashboard

import (
	"context"

	"pixelcraft/internal/domain"
	"pixelcraft/internal/repository"
)

type QuoteStore interface {
	List(ctx context.Context, f repository.QuoteFilter, limit, offset int) ([]domain.Quote, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByPriority(ctx context.Context) (map[string]int64, error)
}

type LeadStore interface {
	List(ctx context.Context, limit, offset int) ([]domain.Lead, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
}

type MessageStore interface {
	List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, int64, error)
}
