package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// emailMessage matches the provider's send endpoint: POST {to, from, subject,
// html} with a bearer key.
type emailMessage struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

var clientConfirmationTmpl = template.Must(template.New("client").Parse(`
<p>Hi {{.FullName}},</p>
<p>Thanks for requesting a quote. Your request is in our queue under reference
<strong>{{.QuoteID}}</strong> and we will get back to you shortly.</p>
<ul>
  <li>Service: {{.ServiceSlug}}</li>
  <li>Project type: {{.ProjectType}}</li>
  <li>Budget: {{.BudgetRange}}</li>
  <li>Timeline: {{.Timeline}}</li>
</ul>
<p>— the pixelcraft team</p>
`))

var internalAlertTmpl = template.Must(template.New("internal").Parse(`
<p>New quote request <strong>{{.QuoteID}}</strong></p>
<ul>
  <li>Name: {{.FullName}} ({{.Email}}{{if .Phone}}, {{.Phone}}{{end}})</li>
  {{if .Company}}<li>Company: {{.Company}}</li>{{end}}
  <li>Service: {{.ServiceSlug}} / {{.ProjectType}}</li>
  <li>Budget: {{.BudgetRange}}, timeline: {{.Timeline}}</li>
  {{if .Source}}<li>Source: {{.Source}}</li>{{end}}
</ul>
<p>{{.ScopeDetails}}</p>
<p><a href="{{.AdminLink}}">Open in dashboard</a></p>
`))

var contactAlertTmpl = template.Must(template.New("contact").Parse(`
<p>New contact message from {{.Name}} ({{.Email}})</p>
{{if .Subject}}<p>Subject: {{.Subject}}</p>{{end}}
<p>{{.Message}}</p>
`))

func (n *Notifier) sendClientConfirmation(ctx context.Context, ev QuoteEvent) error {
	if n.cfg.EmailAPIURL == "" || n.cfg.EmailAPIKey == "" {
		return errSkipped
	}

	var buf bytes.Buffer
	if err := clientConfirmationTmpl.Execute(&buf, ev); err != nil {
		return err
	}

	return n.sendEmail(ctx, emailMessage{
		To:      ev.Email,
		From:    n.cfg.EmailFrom,
		Subject: "We received your quote request",
		HTML:    buf.String(),
	})
}

func (n *Notifier) sendInternalAlert(ctx context.Context, ev QuoteEvent) error {
	if n.cfg.EmailAPIURL == "" || n.cfg.EmailAPIKey == "" || n.cfg.InternalEmail == "" {
		return errSkipped
	}

	data := struct {
		QuoteEvent
		AdminLink string
	}{ev, fmt.Sprintf("%s/quotes/%s", n.cfg.AdminBaseURL, ev.QuoteID)}

	var buf bytes.Buffer
	if err := internalAlertTmpl.Execute(&buf, data); err != nil {
		return err
	}

	return n.sendEmail(ctx, emailMessage{
		To:      n.cfg.InternalEmail,
		From:    n.cfg.EmailFrom,
		Subject: fmt.Sprintf("New quote request: %s (%s)", ev.ServiceSlug, ev.BudgetRange),
		HTML:    buf.String(),
	})
}

func (n *Notifier) sendContactAlert(ctx context.Context, ev ContactEvent) error {
	if n.cfg.EmailAPIURL == "" || n.cfg.EmailAPIKey == "" || n.cfg.InternalEmail == "" {
		return errSkipped
	}

	var buf bytes.Buffer
	if err := contactAlertTmpl.Execute(&buf, ev); err != nil {
		return err
	}

	subject := "New contact message"
	if ev.Subject != "" {
		subject = "Contact: " + ev.Subject
	}

	return n.sendEmail(ctx, emailMessage{
		To:      n.cfg.InternalEmail,
		From:    n.cfg.EmailFrom,
		Subject: subject,
		HTML:    buf.String(),
	})
}

func (n *Notifier) sendEmail(ctx context.Context, msg emailMessage) error {
	return n.postJSON(ctx, n.cfg.EmailAPIURL, n.cfg.EmailAPIKey, msg)
}
