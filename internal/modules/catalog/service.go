package catalog

import (
	"context"

	"pixelcraft/internal/domain"
)

type ServiceStore interface {
	ListActive(ctx context.Context) ([]domain.Service, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Service, error)
}

// Service exposes the agency's offering catalog: the public listing the site
// renders and the known-slug lookup the intake workflow checks against.
type Service struct {
	store ServiceStore
}

func NewService(store ServiceStore) *Service {
	return &Service{store: store}
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.store.ListActive(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	return s.store.GetBySlug(ctx, slug)
}
