package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pixelcraft/internal/domain"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

type leadModel struct {
	ID       string `gorm:"column:id;primaryKey"`
	Email    string `gorm:"column:email;uniqueIndex;not null"`
	FullName string `gorm:"column:full_name"`
	Phone    string `gorm:"column:phone"`
	Company  string `gorm:"column:company"`

	Source      string `gorm:"column:source"`
	UTMSource   string `gorm:"column:utm_source"`
	UTMMedium   string `gorm:"column:utm_medium"`
	UTMCampaign string `gorm:"column:utm_campaign"`

	IPAddress string `gorm:"column:ip_address"`
	UserAgent string `gorm:"column:user_agent"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (leadModel) TableName() string { return "leads" }

func toDomainLead(m leadModel) *domain.Lead {
	return &domain.Lead{
		ID:          m.ID,
		Email:       m.Email,
		FullName:    m.FullName,
		Phone:       m.Phone,
		Company:     m.Company,
		Source:      m.Source,
		UTMSource:   m.UTMSource,
		UTMMedium:   m.UTMMedium,
		UTMCampaign: m.UTMCampaign,
		IPAddress:   m.IPAddress,
		UserAgent:   m.UserAgent,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toLeadModel(l *domain.Lead) leadModel {
	return leadModel{
		ID:          l.ID,
		Email:       l.Email,
		FullName:    l.FullName,
		Phone:       l.Phone,
		Company:     l.Company,
		Source:      l.Source,
		UTMSource:   l.UTMSource,
		UTMMedium:   l.UTMMedium,
		UTMCampaign: l.UTMCampaign,
		IPAddress:   l.IPAddress,
		UserAgent:   l.UserAgent,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// leadMutableColumns are overwritten on every repeat submission from the same
// email (last write wins). id and created_at survive from the first insert.
var leadMutableColumns = []string{
	"full_name", "phone", "company",
	"source", "utm_source", "utm_medium", "utm_campaign",
	"ip_address", "user_agent", "updated_at",
}

// Upsert atomically inserts the lead or, when the email already exists,
// overwrites the mutable columns of the existing row. It returns the
// surviving row, whose id differs from l.ID when the email was known. Using
// a single INSERT ... ON CONFLICT closes the race between two simultaneous
// first-time submissions of one email.
func (r *LeadRepository) Upsert(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	m := toLeadModel(l)
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns(leadMutableColumns),
	}).Create(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return r.GetByEmail(ctx, l.Email)
}

func (r *LeadRepository) GetByEmail(ctx context.Context, email string) (*domain.Lead, error) {
	var m leadModel
	tx := r.db.WithContext(ctx).Where("email = ?", email).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainLead(m), nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	var m leadModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainLead(m), nil
}

func (r *LeadRepository) List(ctx context.Context, limit, offset int) ([]domain.Lead, int64, error) {
	var total int64
	if tx := r.db.WithContext(ctx).Model(&leadModel{}).Count(&total); tx.Error != nil {
		return nil, 0, tx.Error
	}

	var rows []leadModel
	tx := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.Lead, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainLead(m))
	}
	return out, total, nil
}
