package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pixelcraft/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Slug        string `gorm:"column:slug;uniqueIndex;not null"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description;type:text"`
	Active      bool   `gorm:"column:active"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	return &domain.Service{
		ID:          m.ID,
		Slug:        m.Slug,
		Name:        m.Name,
		Description: m.Description,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *ServiceRepository) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) ListActive(ctx context.Context) ([]domain.Service, error) {
	var rows []serviceModel
	tx := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

// UpsertBySlug keeps the catalog seed idempotent.
func (r *ServiceRepository) UpsertBySlug(ctx context.Context, s *domain.Service) error {
	m := serviceModel{
		Slug:        s.Slug,
		Name:        s.Name,
		Description: s.Description,
		Active:      s.Active,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "active", "updated_at"}),
	}).Create(&m)
	return tx.Error
}
