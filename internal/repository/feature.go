package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopwave/ecommerce-backend/internal/models"
)

type FeatureRepository interface {
	Create(ctx context.Context, image *models.FeatureImage) error
	List(ctx context.Context) ([]models.FeatureImage, error)
}

type gormFeatureRepo struct{ db *gorm.DB }

func NewFeatureRepository(db *gorm.DB) FeatureRepository {
	return &gormFeatureRepo{db: db}
}

func (r *gormFeatureRepo) Create(ctx context.Context, image *models.FeatureImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return fmt.Errorf("create feature image: %w", err)
	}
	return nil
}

func (r *gormFeatureRepo) List(ctx context.Context) ([]models.FeatureImage, error) {
	var images []models.FeatureImage
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("list feature images: %w", err)
	}
	return images, nil
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

type gormAuditRepo struct{ db *gorm.DB }

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &gormAuditRepo{db: db}
}

func (r *gormAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
