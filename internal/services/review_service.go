package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/shopwave/ecommerce-backend/internal/cache"
	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type ReviewService struct {
	reviews  repository.ReviewRepository
	orders   repository.OrderRepository
	products repository.ProductRepository
	cache    cache.ProductCache
}

type AddReviewRequest struct {
	ProductID     string `json:"productId" validate:"required,uuid"`
	UserID        string `json:"userId" validate:"required,uuid"`
	UserName      string `json:"userName" validate:"required,max=100"`
	ReviewMessage string `json:"reviewMessage" validate:"required,max=5000"`
	ReviewValue   int    `json:"reviewValue" validate:"required,min=1,max=5"`
}

func NewReviewService(
	reviews repository.ReviewRepository,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	productCache cache.ProductCache,
) *ReviewService {
	if productCache == nil {
		productCache = cache.NoopProductCache{}
	}
	return &ReviewService{
		reviews:  reviews,
		orders:   orders,
		products: products,
		cache:    productCache,
	}
}

// AddReview accepts one review per user and product, only from users holding an
// order for the product in a reviewable status. The product's averageReview is
// recomputed over all of its reviews afterwards.
func (s *ReviewService) AddReview(ctx context.Context, req *AddReviewRequest) (*models.Review, error) {
	req.UserName = strings.TrimSpace(req.UserName)
	req.ReviewMessage = strings.TrimSpace(req.ReviewMessage)
	if req.ReviewValue < 1 || req.ReviewValue > 5 {
		return nil, utils.NewValidationError(i18n.KeyReviewInvalidValue)
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	productID, _ := uuid.Parse(req.ProductID)
	userID, _ := uuid.Parse(req.UserID)

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, notFound(err, i18n.KeyProductNotFound)
	}

	purchased, err := s.orders.ExistsWithProductInStatuses(ctx, userID, productID, models.ReviewableOrderStatuses)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, utils.NewForbiddenError(i18n.KeyReviewNotPurchased)
	}

	exists, err := s.reviews.Exists(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewConflictError(i18n.KeyReviewDuplicate)
	}

	review := &models.Review{
		ProductID:     productID,
		UserID:        userID,
		UserName:      req.UserName,
		ReviewMessage: req.ReviewMessage,
		ReviewValue:   req.ReviewValue,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewConflictError(i18n.KeyReviewDuplicate)
		}
		return nil, err
	}

	if err := s.refreshAverage(ctx, productID); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews returns a product's reviews, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, notFound(err, i18n.KeyProductNotFound)
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func (s *ReviewService) refreshAverage(ctx context.Context, productID uuid.UUID) error {
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.products.UpdateAverageReview(ctx, productID, models.AverageRating(reviews)); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, productID)
	return nil
}
