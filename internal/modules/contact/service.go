package contact

import (
	"context"

	"go.uber.org/zap"

	"pixelcraft/internal/domain"
	"pixelcraft/internal/notify"
	"pixelcraft/internal/pkg/validator"
)

type MessageStore interface {
	Create(ctx context.Context, c *domain.ContactMessage) error
}

type Notifier interface {
	DispatchContact(ev notify.ContactEvent)
}

// Service handles contact-form intake with the same policy as quotes: once
// the input validates, the caller gets a success even if the store is down.
type Service struct {
	store    MessageStore
	notifier Notifier
}

// NewService wires the contact intake. store may be nil when no database is
// configured; messages are then delivered via notifications only.
func NewService(store MessageStore, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

func (s *Service) Submit(ctx context.Context, req *ContactRequest, ip, userAgent string) validator.Errors {
	if details := validator.Validate(req); details != nil {
		return details
	}

	if s.store != nil {
		msg := &domain.ContactMessage{
			Name:      req.Name,
			Email:     req.Email,
			Subject:   req.Subject,
			Message:   req.Message,
			IPAddress: ip,
			UserAgent: userAgent,
		}
		if err := s.store.Create(ctx, msg); err != nil {
			zap.L().Error("contact message not stored, delivering via notifications only", zap.Error(err))
		}
	}

	s.notifier.DispatchContact(notify.ContactEvent{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})

	return nil
}
