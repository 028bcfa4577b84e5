package dashboard

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pixelcraft/internal/domain"
	"pixelcraft/internal/repository"
)

var ErrUnknownStatus = errors.New("unknown quote status")

// Service backs the admin portal screens: triage lists, detail views and the
// intake stats widget. The intake workflow never goes through here; this is
// read-mostly plus the flat quote status mark.
type Service struct {
	quotes   QuoteStore
	leads    LeadStore
	messages MessageStore
}

func NewService(quotes QuoteStore, leads LeadStore, messages MessageStore) *Service {
	return &Service{quotes: quotes, leads: leads, messages: messages}
}

func (s *Service) ListQuotes(ctx context.Context, f repository.QuoteFilter, limit, offset int) ([]domain.Quote, int64, error) {
	return s.quotes.List(ctx, f, limit, offset)
}

// GetQuote returns the quote with its lead attached.
func (s *Service) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	q, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lead, err := s.leads.GetByID(ctx, q.LeadID)
	if err != nil {
		// The quote view still renders; the log line is what tells store
		// trouble apart from a genuinely missing lead.
		zap.L().Error("lead lookup failed for quote view",
			zap.String("quote_id", q.ID),
			zap.String("lead_id", q.LeadID),
			zap.Error(err),
		)
		return q, nil
	}
	q.Lead = lead
	return q, nil
}

// UpdateQuoteStatus sets the triage mark. Any known status may follow any
// other; intake only ever creates quotes as "new" and there is no enforced
// lifecycle beyond that.
func (s *Service) UpdateQuoteStatus(ctx context.Context, id string, status domain.QuoteStatus) error {
	if !status.Known() {
		return ErrUnknownStatus
	}
	return s.quotes.UpdateStatus(ctx, id, status)
}

func (s *Service) ListLeads(ctx context.Context, limit, offset int) ([]domain.Lead, int64, error) {
	return s.leads.List(ctx, limit, offset)
}

func (s *Service) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

func (s *Service) ListMessages(ctx context.Context, limit, offset int) ([]domain.ContactMessage, int64, error) {
	return s.messages.List(ctx, limit, offset)
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	byStatus, err := s.quotes.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.quotes.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{ByStatus: byStatus, ByPriority: byPriority}, nil
}
