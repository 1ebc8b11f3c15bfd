package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopwave/ecommerce-backend/internal/models"
)

// Product sort keys accepted by the catalog.
const (
	SortPriceLowToHigh = "price-lowtohigh"
	SortPriceHighToLow = "price-hightolow"
	SortTitleAToZ      = "title-atoz"
	SortTitleZToA      = "title-ztoa"
)

var productSortColumns = map[string]string{
	SortPriceLowToHigh: "price ASC",
	SortPriceHighToLow: "price DESC",
	SortTitleAToZ:      "title ASC",
	SortTitleZToA:      "title DESC",
}

// ProductFilter selects products by facet. Values within a facet are OR-ed, facets are AND-ed.
type ProductFilter struct {
	Categories []string
	Brands     []string
	SortBy     string
	Limit      int
	Offset     int
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	Search(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	SearchKeyword(ctx context.Context, keyword string) ([]models.Product, error)
	UpdateAverageReview(ctx context.Context, id uuid.UUID, average decimal.Decimal) error
}

type gormProductRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepo{db: db}
}

func (r *gormProductRepo) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *gormProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *gormProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	return products, nil
}

// SortClause resolves a catalog sort key, defaulting to price ascending.
func SortClause(sortBy string) string {
	if clause, ok := productSortColumns[sortBy]; ok {
		return clause
	}
	return productSortColumns[SortPriceLowToHigh]
}

func (r *gormProductRepo) Search(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if len(filter.Brands) > 0 {
		query = query.Where("brand IN ?", filter.Brands)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	var products []models.Product
	err := query.Order(SortClause(filter.SortBy)).Order("id").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

func (r *gormProductRepo) SearchKeyword(ctx context.Context, keyword string) ([]models.Product, error) {
	pattern := "%" + strings.ReplaceAll(strings.ReplaceAll(keyword, "%", `\%`), "_", `\_`) + "%"

	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("title ILIKE ? OR description ILIKE ? OR category ILIKE ? OR brand ILIKE ?",
			pattern, pattern, pattern, pattern).
		Order("title ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

func (r *gormProductRepo) UpdateAverageReview(ctx context.Context, id uuid.UUID, average decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("average_review", average)
	if res.Error != nil {
		return fmt.Errorf("update average review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
