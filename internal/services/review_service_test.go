package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type reviewFixture struct {
	store   *memStore
	orders  *OrderService
	reviews *ReviewService
	cache   *countingCache
}

func newReviewFixture() *reviewFixture {
	store := newMemStore()
	productCache := newCountingCache()
	return &reviewFixture{
		store:   store,
		orders:  NewOrderService(memOrders{Store: store}, memProducts{Store: store}, &mockGateway{}, &recordingNotifier{}, ""),
		reviews: NewReviewService(memReviews{Store: store}, memOrders{Store: store}, memProducts{Store: store}, productCache),
		cache:   productCache,
	}
}

// purchase places a cod order for product and moves it to status.
func (f *reviewFixture) purchase(t *testing.T, userID uuid.UUID, product models.Product, status models.OrderStatus) {
	t.Helper()
	res, err := f.orders.CreateOrder(context.Background(), orderReq(userID, nil, "cod", product))
	require.NoError(t, err)
	require.NoError(t, memOrders{Store: f.store}.UpdateStatus(context.Background(), res.Order.ID, status))
}

func reviewReq(userID, productID uuid.UUID, value int) *AddReviewRequest {
	return &AddReviewRequest{
		ProductID:     productID.String(),
		UserID:        userID.String(),
		UserName:      "alice",
		ReviewMessage: "Great fit",
		ReviewValue:   value,
	}
}

func TestReviewService_RequiresReviewablePurchase(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	userID := uuid.New()
	shirt := f.store.AddProduct("Shirt", 100, 0, 10)

	_, err := f.reviews.AddReview(ctx, reviewReq(userID, shirt.ID, 4))
	assert.True(t, utils.IsKind(err, utils.KindForbidden), "never ordered")

	f.purchase(t, userID, shirt, models.OrderStatusShipped)
	_, err = f.reviews.AddReview(ctx, reviewReq(userID, shirt.ID, 4))
	assert.True(t, utils.IsKind(err, utils.KindForbidden), "not delivered yet")

	f.purchase(t, userID, shirt, models.OrderStatusDelivered)
	review, err := f.reviews.AddReview(ctx, reviewReq(userID, shirt.ID, 4))
	require.NoError(t, err)
	assert.Equal(t, 4, review.ReviewValue)
}

func TestReviewService_LegacyConfirmedStatusQualifies(t *testing.T) {
	f := newReviewFixture()
	userID := uuid.New()
	shirt := f.store.AddProduct("Shirt", 100, 0, 10)
	f.purchase(t, userID, shirt, models.OrderStatusConfirmed)

	_, err := f.reviews.AddReview(context.Background(), reviewReq(userID, shirt.ID, 5))
	require.NoError(t, err)
}

func TestReviewService_DuplicateIsConflict(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	userID := uuid.New()
	shirt := f.store.AddProduct("Shirt", 100, 0, 10)
	f.purchase(t, userID, shirt, models.OrderStatusDelivered)

	_, err := f.reviews.AddReview(ctx, reviewReq(userID, shirt.ID, 5))
	require.NoError(t, err)

	_, err = f.reviews.AddReview(ctx, reviewReq(userID, shirt.ID, 1))
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	reviews, err := f.reviews.ListReviews(ctx, shirt.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestReviewService_UpdatesAverageAndInvalidatesCache(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	shirt := f.store.AddProduct("Shirt", 100, 0, 10)
	f.cache.Set(ctx, &shirt)

	for _, value := range []int{5, 4, 4} {
		userID := uuid.New()
		f.purchase(t, userID, shirt, models.OrderStatusDelivered)
		_, err := f.reviews.AddReview(ctx, reviewReq(userID, shirt.ID, value))
		require.NoError(t, err)
	}

	stored, err := memProducts{Store: f.store}.GetByID(ctx, shirt.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.33").Equal(stored.AverageReview), "got %s", stored.AverageReview)

	_, cached := f.cache.Get(ctx, shirt.ID)
	assert.False(t, cached)
	assert.Len(t, f.cache.invalidated, 3)
}

func TestReviewService_Validation(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	shirt := f.store.AddProduct("Shirt", 100, 0, 10)

	for _, value := range []int{0, 6, -1} {
		_, err := f.reviews.AddReview(ctx, reviewReq(uuid.New(), shirt.ID, value))
		assert.True(t, utils.IsKind(err, utils.KindValidation), "value %d", value)
	}

	req := reviewReq(uuid.New(), shirt.ID, 3)
	req.ReviewMessage = "   "
	_, err := f.reviews.AddReview(ctx, req)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = f.reviews.AddReview(ctx, reviewReq(uuid.New(), uuid.New(), 3))
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestReviewService_ListReviews(t *testing.T) {
	f := newReviewFixture()
	ctx := context.Background()
	shirt := f.store.AddProduct("Shirt", 100, 0, 10)

	reviews, err := f.reviews.ListReviews(ctx, shirt.ID)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)

	_, err = f.reviews.ListReviews(ctx, uuid.New())
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}
