package domain

import "time"

// ContactMessage is a plain contact-form submission from the site. Unlike a
// quote it carries no lead linkage; it is stored for the portal inbox and
// forwarded to the internal channels.
type ContactMessage struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`

	IPAddress string    `json:"-"`
	UserAgent string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
