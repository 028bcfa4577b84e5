package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// crmContact is the contact-creation payload the CRM endpoint accepts.
type crmContact struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
	Service  string `json:"service,omitempty"`
	Budget   string `json:"budget,omitempty"`
	Timeline string `json:"timeline,omitempty"`
	Source   string `json:"source,omitempty"`
	QuoteRef string `json:"quote_ref,omitempty"`
}

func (n *Notifier) syncCRM(ctx context.Context, ev QuoteEvent) error {
	if n.cfg.CRMURL == "" || n.cfg.CRMToken == "" {
		return errSkipped
	}

	payload := crmContact{
		Email:    ev.Email,
		Name:     ev.FullName,
		Phone:    ev.Phone,
		Company:  ev.Company,
		Service:  ev.ServiceSlug,
		Budget:   ev.BudgetRange,
		Timeline: ev.Timeline,
		Source:   ev.Source,
		QuoteRef: ev.QuoteID,
	}

	url := strings.TrimRight(n.cfg.CRMURL, "/") + "/contacts"
	return n.postJSON(ctx, url, n.cfg.CRMToken, payload)
}

func (n *Notifier) postJSON(ctx context.Context, url, bearer string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return nil
}
