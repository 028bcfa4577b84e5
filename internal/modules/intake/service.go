package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pixelcraft/internal/domain"
	"pixelcraft/internal/notify"
	"pixelcraft/internal/pkg/validator"
)

const defaultSource = "website"

// Service runs the quote-intake workflow: validate, resolve the lead by
// email, record the quote, fan notifications out. Once validation passes the
// caller always gets a success result; persistence trouble is downgraded to
// the backup path on purpose (conversion over durability). Do not tighten
// this into stricter error surfacing without talking to the stakeholders.
type Service struct {
	leads    LeadStore
	quotes   QuoteStore
	catalog  ServiceCatalog
	notifier Notifier
	feed     FeedPublisher
}

// NewService wires the workflow. leads, quotes and catalog may all be nil
// when no database is configured; every submission then takes the backup
// path. feed may be nil.
func NewService(leads LeadStore, quotes QuoteStore, catalog ServiceCatalog, notifier Notifier, feed FeedPublisher) *Service {
	return &Service{
		leads:    leads,
		quotes:   quotes,
		catalog:  catalog,
		notifier: notifier,
		feed:     feed,
	}
}

// SubmitQuote is the single entry point of the workflow. The only error it
// returns is *ValidationFailedError.
func (s *Service) SubmitQuote(ctx context.Context, req *QuoteSubmission, meta RequestMeta) (*SubmissionResult, error) {
	details := validator.Validate(req)
	if d := s.checkService(ctx, req.Service); d != "" {
		if details == nil {
			details = make(validator.Errors)
		}
		details["service"] = append(details["service"], d)
	}
	if len(details) > 0 {
		return nil, &ValidationFailedError{Details: details}
	}

	if req.Source == "" {
		req.Source = defaultSource
	}

	if s.leads == nil || s.quotes == nil {
		zap.L().Warn("quote intake running without persistence, taking backup path")
		return s.fallback(req), nil
	}

	lead, err := s.resolveLead(ctx, req, meta)
	if err != nil {
		zap.L().Error("lead resolution failed, taking backup path", zap.Error(err))
		return s.fallback(req), nil
	}

	quote, err := s.recordQuote(ctx, req, lead.ID)
	if err != nil {
		zap.L().Error("quote recording failed, taking backup path", zap.Error(err))
		return s.fallback(req), nil
	}

	s.notifier.DispatchQuote(quoteEvent(req, quote.ID))
	if s.feed != nil {
		s.feed.PublishQuote(quote)
	}

	return &SubmissionResult{
		OK:      true,
		QuoteID: quote.ID,
		LeadID:  lead.ID,
		Next:    "/thank-you?qid=" + quote.ID,
		Message: "Your quote request has been received.",
	}, nil
}

// checkService returns a validation message when the slug does not reference
// a known active service. A catalog read failure is not a validation failure:
// the submission is accepted rather than bounced on infrastructure trouble.
func (s *Service) checkService(ctx context.Context, slug string) string {
	if s.catalog == nil || slug == "" {
		return ""
	}

	svc, err := s.catalog.GetBySlug(ctx, slug)
	if err != nil {
		zap.L().Warn("service lookup failed during intake, skipping check", zap.Error(err))
		return ""
	}
	if svc == nil || !svc.Active {
		return "must reference a known service"
	}
	return ""
}

// resolveLead upserts the lead keyed by email. The returned lead carries the
// surviving id: the existing row's when the email was already known.
func (s *Service) resolveLead(ctx context.Context, req *QuoteSubmission, meta RequestMeta) (*domain.Lead, error) {
	now := time.Now()
	return s.leads.Upsert(ctx, &domain.Lead{
		ID:          uuid.NewString(),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:    req.FullName,
		Phone:       req.Phone,
		Company:     req.Company,
		Source:      req.Source,
		UTMSource:   req.UTMSource,
		UTMMedium:   req.UTMMedium,
		UTMCampaign: req.UTMCampaign,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) recordQuote(ctx context.Context, req *QuoteSubmission, leadID string) (*domain.Quote, error) {
	q := &domain.Quote{
		ID:           uuid.NewString(),
		LeadID:       leadID,
		ServiceSlug:  req.Service,
		ProjectType:  req.ProjectType,
		BudgetRange:  req.BudgetRange,
		Timeline:     req.Timeline,
		ScopeDetails: req.ScopeDetails,
		AssetsReady:  req.AssetsReady,
		RefLinks:     req.RefLinks,
		Status:       domain.QuoteNew,
		Priority:     domain.PriorityForBudget(req.BudgetRange),
		Source:       req.Source,
		CreatedAt:    time.Now(),
	}
	if err := s.quotes.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// fallback synthesizes a tracking id and still fires notifications, so the
// team hears about the request even though nothing was stored.
func (s *Service) fallback(req *QuoteSubmission) *SubmissionResult {
	qid := backupQuoteID()
	s.notifier.DispatchQuote(quoteEvent(req, qid))

	return &SubmissionResult{
		OK:      true,
		QuoteID: qid,
		Next:    "/thank-you?qid=" + qid,
		Message: "Your quote request has been received.",
		Note:    "processed via backup system",
	}
}

func backupQuoteID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%s-%s", domain.BackupIDPrefix, time.Now().Format("20060102150405"), suffix)
}

func quoteEvent(req *QuoteSubmission, quoteID string) notify.QuoteEvent {
	return notify.QuoteEvent{
		QuoteID:      quoteID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		ServiceSlug:  req.Service,
		ProjectType:  req.ProjectType,
		BudgetRange:  req.BudgetRange,
		Timeline:     req.Timeline,
		ScopeDetails: req.ScopeDetails,
		Source:       req.Source,
	}
}
