package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"pixelcraft/internal/domain"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

type quoteModel struct {
	ID     string `gorm:"column:id;primaryKey"`
	LeadID string `gorm:"column:lead_id;index;not null"`

	ServiceSlug  string `gorm:"column:service_slug"`
	ProjectType  string `gorm:"column:project_type"`
	BudgetRange  string `gorm:"column:budget_range"`
	Timeline     string `gorm:"column:timeline"`
	ScopeDetails string `gorm:"column:scope_details;type:text"`
	AssetsReady  bool   `gorm:"column:assets_ready"`
	RefLinks     string `gorm:"column:ref_links;type:text"`

	Status   string `gorm:"column:status;index"`
	Priority string `gorm:"column:priority;index"`
	Source   string `gorm:"column:source"`

	CreatedAt time.Time `gorm:"column:created_at"`
}

func (quoteModel) TableName() string { return "quotes" }

func toDomainQuote(m quoteModel) *domain.Quote {
	var links []string
	if m.RefLinks != "" {
		_ = json.Unmarshal([]byte(m.RefLinks), &links)
	}

	return &domain.Quote{
		ID:           m.ID,
		LeadID:       m.LeadID,
		ServiceSlug:  m.ServiceSlug,
		ProjectType:  m.ProjectType,
		BudgetRange:  m.BudgetRange,
		Timeline:     m.Timeline,
		ScopeDetails: m.ScopeDetails,
		AssetsReady:  m.AssetsReady,
		RefLinks:     links,
		Status:       domain.QuoteStatus(m.Status),
		Priority:     domain.Priority(m.Priority),
		Source:       m.Source,
		CreatedAt:    m.CreatedAt,
	}
}

func toQuoteModel(q *domain.Quote) quoteModel {
	var links string
	if len(q.RefLinks) > 0 {
		b, _ := json.Marshal(q.RefLinks)
		links = string(b)
	}

	return quoteModel{
		ID:           q.ID,
		LeadID:       q.LeadID,
		ServiceSlug:  q.ServiceSlug,
		ProjectType:  q.ProjectType,
		BudgetRange:  q.BudgetRange,
		Timeline:     q.Timeline,
		ScopeDetails: q.ScopeDetails,
		AssetsReady:  q.AssetsReady,
		RefLinks:     links,
		Status:       string(q.Status),
		Priority:     string(q.Priority),
		Source:       q.Source,
		CreatedAt:    q.CreatedAt,
	}
}

func (r *QuoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	m := toQuoteModel(q)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*q = *toDomainQuote(m)
	return nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	var m quoteModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainQuote(m), nil
}

// QuoteFilter narrows List; zero values mean no filtering.
type QuoteFilter struct {
	Status   string
	Priority string
}

func (r *QuoteRepository) List(ctx context.Context, f QuoteFilter, limit, offset int) ([]domain.Quote, int64, error) {
	q := r.db.WithContext(ctx).Model(&quoteModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}

	var total int64
	if tx := q.Count(&total); tx.Error != nil {
		return nil, 0, tx.Error
	}

	var rows []quoteModel
	tx := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.Quote, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainQuote(m))
	}
	return out, total, nil
}

func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&quoteModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuoteRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "status")
}

func (r *QuoteRepository) CountByPriority(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "priority")
}

func (r *QuoteRepository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	type row struct {
		Key   string
		Count int64
	}
	var rows []row
	tx := r.db.WithContext(ctx).
		Model(&quoteModel{}).
		Select(column+" AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out, nil
}
