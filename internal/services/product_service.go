// internal/services/product_service.go
package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shopwave/ecommerce-backend/internal/cache"
	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type ProductService struct {
	products repository.ProductRepository
	cache    cache.ProductCache
}

// ProductQuery is the storefront listing request. Category and Brand are comma separated.
type ProductQuery struct {
	Category string
	Brand    string
	SortBy   string
	Page     int
	Limit    int
}

func NewProductService(products repository.ProductRepository, productCache cache.ProductCache) *ProductService {
	if productCache == nil {
		productCache = cache.NoopProductCache{}
	}
	return &ProductService{
		products: products,
		cache:    productCache,
	}
}

func (s *ProductService) ListProducts(ctx context.Context, q ProductQuery) (*utils.PaginationResult, error) {
	params := utils.NormalizePagination(q.Page, q.Limit)

	products, total, err := s.products.Search(ctx, repository.ProductFilter{
		Categories: utils.SplitList(q.Category),
		Brands:     utils.SplitList(q.Brand),
		SortBy:     q.SortBy,
		Limit:      params.Limit,
		Offset:     params.Offset(),
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

// GetProduct reads through the product cache.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.cache.Get(ctx, id); ok {
		return product, nil
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, i18n.KeyProductNotFound)
	}

	s.cache.Set(ctx, product)
	return product, nil
}

func (s *ProductService) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, utils.NewValidationError(i18n.KeyValidationInvalid, "keyword")
	}

	products, err := s.products.SearchKeyword(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
