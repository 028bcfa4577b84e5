package dashboard

import "pixelcraft/internal/domain"

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new reviewed quoted won lost"`
}

type QuoteListResponse struct {
	Quotes []domain.Quote `json:"quotes"`
	Total  int64          `json:"total"`
}

type LeadListResponse struct {
	Leads []domain.Lead `json:"leads"`
	Total int64         `json:"total"`
}

type MessageListResponse struct {
	Messages []domain.ContactMessage `json:"messages"`
	Total    int64                   `json:"total"`
}

type StatsResponse struct {
	ByStatus   map[string]int64 `json:"by_status"`
	ByPriority map[string]int64 `json:"by_priority"`
}
