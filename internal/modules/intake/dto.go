package intake

// QuoteSubmission is the raw quote-intake body. Validation collects every
// violated field in one pass; see internal/pkg/validator for the message
// rendering and the phone/httpurl rules.
type QuoteSubmission struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Company  string `json:"company" validate:"omitempty,max=100"`

	Service      string   `json:"service" validate:"required"`
	ProjectType  string   `json:"project_type" validate:"required,oneof=website photo video branding content other"`
	BudgetRange  string   `json:"budget_range" validate:"required,oneof=under-1k 1k-3k 3k-5k 5k-10k 10k-plus"`
	Timeline     string   `json:"timeline" validate:"required,oneof=asap 2-4weeks 1-2months flexible"`
	ScopeDetails string   `json:"scope_details" validate:"required,min=50,max=1000"`
	AssetsReady  bool     `json:"assets_ready"`
	RefLinks     []string `json:"ref_links" validate:"max=5,dive,omitempty,httpurl"`

	ConsentMarketing bool `json:"consent_marketing"`

	Source      string `json:"source"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
}

// RequestMeta carries the per-request audit fields captured by the handler.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// SubmissionResult is the wire shape of a successful intake. Note stays empty
// on the normal path and flags the degraded one.
type SubmissionResult struct {
	OK      bool   `json:"ok"`
	QuoteID string `json:"quote_id"`
	LeadID  string `json:"lead_id,omitempty"`
	Next    string `json:"next"`
	Message string `json:"message"`
	Note    string `json:"note,omitempty"`
}
