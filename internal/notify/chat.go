package notify

import (
	"context"
	"fmt"
	"unicode/utf8"
)

const scopeExcerptLen = 140

// chatMessage is the webhook payload; the text field is what Slack-style
// webhooks render.
type chatMessage struct {
	Text string `json:"text"`
}

func (n *Notifier) postQuoteAlert(ctx context.Context, ev QuoteEvent) error {
	if n.cfg.ChatWebhookURL == "" {
		return errSkipped
	}

	msg := chatMessage{
		Text: fmt.Sprintf(
			"New quote request: %s | %s | %s\n%s\n%s/quotes/%s",
			ev.ServiceSlug, ev.BudgetRange, ev.Timeline,
			excerpt(ev.ScopeDetails), n.cfg.AdminBaseURL, ev.QuoteID,
		),
	}
	return n.postJSON(ctx, n.cfg.ChatWebhookURL, "", msg)
}

func (n *Notifier) postContactAlert(ctx context.Context, ev ContactEvent) error {
	if n.cfg.ChatWebhookURL == "" {
		return errSkipped
	}

	msg := chatMessage{
		Text: fmt.Sprintf("New contact message from %s (%s): %s", ev.Name, ev.Email, excerpt(ev.Message)),
	}
	return n.postJSON(ctx, n.cfg.ChatWebhookURL, "", msg)
}

// excerpt truncates on a rune boundary so multi-byte text stays valid UTF-8.
func excerpt(s string) string {
	if len(s) <= scopeExcerptLen {
		return s
	}
	cut := scopeExcerptLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
