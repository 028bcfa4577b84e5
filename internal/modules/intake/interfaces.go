package intake

import (
	"context"

	"pixelcraft/internal/domain"
	"pixelcraft/internal/notify"
)

type LeadStore interface {
	Upsert(ctx context.Context, l *domain.Lead) (*domain.Lead, error)
}

type QuoteStore interface {
	Create(ctx context.Context, q *domain.Quote) error
}

type ServiceCatalog interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Service, error)
}

type Notifier interface {
	DispatchQuote(ev notify.QuoteEvent)
}

// FeedPublisher pushes recorded quotes to the dashboard live feed. Optional.
type FeedPublisher interface {
	PublishQuote(q *domain.Quote)
}
