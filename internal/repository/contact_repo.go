package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pixelcraft/internal/domain"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

type contactModel struct {
	ID      int64  `gorm:"column:id;primaryKey"`
	Name    string `gorm:"column:name"`
	Email   string `gorm:"column:email;index"`
	Subject string `gorm:"column:subject"`
	Message string `gorm:"column:message;type:text"`

	IPAddress string    `gorm:"column:ip_address"`
	UserAgent string    `gorm:"column:user_agent"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (contactModel) TableName() string { return "contact_messages" }

func toDomainContact(m contactModel) *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		IPAddress: m.IPAddress,
		UserAgent: m.UserAgent,
		CreatedAt: m.CreatedAt,
	}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.ContactMessage) error {
	m := contactModel{
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		IPAddress: c.IPAddress,
		UserAgent: c.UserAgent,
		CreatedAt: time.Now(),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainContact(m)
	return nil
}

func (r *ContactRepository) List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, int64, error) {
	var total int64
	if tx := r.db.WithContext(ctx).Model(&contactModel{}).Count(&total); tx.Error != nil {
		return nil, 0, tx.Error
	}

	var rows []contactModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	out := make([]domain.ContactMessage, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainContact(m))
	}
	return out, total, nil
}
