package domain

import (
	"strings"
	"time"
)

type QuoteStatus string

const (
	QuoteNew      QuoteStatus = "new"
	QuoteReviewed QuoteStatus = "reviewed"
	QuoteQuoted   QuoteStatus = "quoted"
	QuoteWon      QuoteStatus = "won"
	QuoteLost     QuoteStatus = "lost"
)

func (s QuoteStatus) Known() bool {
	switch s {
	case QuoteNew, QuoteReviewed, QuoteQuoted, QuoteWon, QuoteLost:
		return true
	}
	return false
}

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// PriorityForBudget maps a budget tier to an intake priority. Unrecognized
// values fall back to normal rather than erroring.
func PriorityForBudget(budget string) Priority {
	switch budget {
	case "under-1k", "1k-3k":
		return PriorityNormal
	case "3k-5k", "5k-10k":
		return PriorityHigh
	case "10k-plus":
		return PriorityUrgent
	default:
		return PriorityNormal
	}
}

// Quote is one project inquiry, always linked to exactly one Lead. The intake
// workflow creates it once and never updates it; only the admin portal touches
// Status afterwards.
type Quote struct {
	ID     string `json:"id"`
	LeadID string `json:"lead_id"`

	ServiceSlug  string   `json:"service_slug"`
	ProjectType  string   `json:"project_type"`
	BudgetRange  string   `json:"budget_range"`
	Timeline     string   `json:"timeline"`
	ScopeDetails string   `json:"scope_details"`
	AssetsReady  bool     `json:"assets_ready"`
	RefLinks     []string `json:"ref_links,omitempty"`

	Status   QuoteStatus `json:"status"`
	Priority Priority    `json:"priority"`
	Source   string      `json:"source,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Lead *Lead `json:"lead,omitempty"`
}

// BackupIDPrefix marks quote ids synthesized by the degraded intake path
// instead of the store.
const BackupIDPrefix = "backup-"

func IsBackupID(id string) bool {
	return strings.HasPrefix(id, BackupIDPrefix)
}
