package notify

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pixelcraft/internal/config"
)

// QuoteEvent is the flattened view of a recorded quote handed to the outbound
// channels. QuoteID may be a synthetic backup id when persistence was down.
type QuoteEvent struct {
	QuoteID  string
	FullName string
	Email    string
	Phone    string
	Company  string

	ServiceSlug  string
	ProjectType  string
	BudgetRange  string
	Timeline     string
	ScopeDetails string
	Source       string
}

// ContactEvent is a contact-form submission routed to the internal channels.
type ContactEvent struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Notifier fans a quote out to CRM, client email, internal email and team
// chat. Every channel is best effort: unconfigured means skip, failure is
// logged and swallowed, and no channel ever blocks another or the caller.
type Notifier struct {
	cfg    config.Notifier
	client *http.Client
}

func New(cfg config.Notifier) *Notifier {
	timeout := cfg.HTTPTimeout
	return &Notifier{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type channelStatus struct {
	channel string
	skipped bool
	err     error
}

// DispatchQuote fires the four quote channels and returns immediately. The
// work runs on a context detached from the request, so a client disconnect
// does not cancel in-flight sends.
func (n *Notifier) DispatchQuote(ev QuoteEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.cfg.DispatchBudget)
		defer cancel()
		n.runQuote(ctx, ev)
	}()
}

// DispatchContact forwards a contact message to the internal email and chat
// channels, same fire-and-forget semantics as DispatchQuote.
func (n *Notifier) DispatchContact(ev ContactEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.cfg.DispatchBudget)
		defer cancel()
		n.runContact(ctx, ev)
	}()
}

func (n *Notifier) runQuote(ctx context.Context, ev QuoteEvent) []channelStatus {
	results := make([]channelStatus, 4)

	var g errgroup.Group
	g.Go(func() error {
		results[0] = n.settle("crm", n.syncCRM(ctx, ev))
		return nil
	})
	g.Go(func() error {
		results[1] = n.settle("client_email", n.sendClientConfirmation(ctx, ev))
		return nil
	})
	g.Go(func() error {
		results[2] = n.settle("internal_email", n.sendInternalAlert(ctx, ev))
		return nil
	})
	g.Go(func() error {
		results[3] = n.settle("chat", n.postQuoteAlert(ctx, ev))
		return nil
	})
	_ = g.Wait()

	logSettled("quote", ev.QuoteID, results)
	return results
}

func (n *Notifier) runContact(ctx context.Context, ev ContactEvent) []channelStatus {
	results := make([]channelStatus, 2)

	var g errgroup.Group
	g.Go(func() error {
		results[0] = n.settle("internal_email", n.sendContactAlert(ctx, ev))
		return nil
	})
	g.Go(func() error {
		results[1] = n.settle("chat", n.postContactAlert(ctx, ev))
		return nil
	})
	_ = g.Wait()

	logSettled("contact", ev.Email, results)
	return results
}

// errSkipped marks a channel that had no credential configured.
var errSkipped = errSkippedType{}

type errSkippedType struct{}

func (errSkippedType) Error() string { return "channel not configured" }

func (n *Notifier) settle(channel string, err error) channelStatus {
	if err == errSkipped {
		return channelStatus{channel: channel, skipped: true}
	}
	return channelStatus{channel: channel, err: err}
}

func logSettled(kind, ref string, results []channelStatus) {
	for _, r := range results {
		switch {
		case r.skipped:
			zap.L().Debug("notify channel skipped",
				zap.String("kind", kind), zap.String("ref", ref), zap.String("channel", r.channel))
		case r.err != nil:
			zap.L().Warn("notify channel failed",
				zap.String("kind", kind), zap.String("ref", ref), zap.String("channel", r.channel), zap.Error(r.err))
		default:
			zap.L().Info("notify channel delivered",
				zap.String("kind", kind), zap.String("ref", ref), zap.String("channel", r.channel))
		}
	}
}
