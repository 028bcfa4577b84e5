package domain

import "time"

// Lead is the identity anchor for a prospective client. There is at most one
// Lead per email; repeat submissions overwrite the mutable fields (last write
// wins) and bump UpdatedAt.
type Lead struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`

	Source      string `json:"source,omitempty"`
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`

	IPAddress string `json:"-"`
	UserAgent string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
