package services

import (
	"context"
	"mime/multipart"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/testutil"
)

type (
	memStore    = testutil.Store
	memUsers    = testutil.Users
	memProducts = testutil.Products
	memCarts    = testutil.Carts
	memOrders   = testutil.Orders
	memReviews  = testutil.Reviews
	memFeatures = testutil.Features
)

func newMemStore() *memStore { return testutil.NewStore() }

// collaborators

type mockGateway struct{ mock.Mock }

func (m *mockGateway) Name() string { return "mock" }

func (m *mockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*PaymentHandshake, error) {
	args := m.Called(ctx, amountMinor, currency, receipt)
	handshake, _ := args.Get(0).(*PaymentHandshake)
	return handshake, args.Error(1)
}

func (m *mockGateway) VerifyPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) error {
	args := m.Called(ctx, gatewayOrderID, paymentID, signature)
	return args.Error(0)
}

type recordedEvent struct {
	Type    string
	OrderID uuid.UUID
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) record(eventType string, order *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Type: eventType, OrderID: order.ID})
}

func (n *recordingNotifier) OrderCreated(_ context.Context, order *models.Order) {
	n.record(EventOrderCreated, order)
}

func (n *recordingNotifier) OrderStatusChanged(_ context.Context, order *models.Order) {
	n.record(EventOrderStatusChanged, order)
}

func (n *recordingNotifier) PaymentStatusChanged(_ context.Context, order *models.Order) {
	n.record(EventOrderPaymentStatusChanged, order)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

type stubFileStore struct {
	url     string
	err     error
	options []UploadOptions
}

func (s *stubFileStore) UploadFile(_ context.Context, _ multipart.File, _ *multipart.FileHeader, options UploadOptions) (*UploadResult, error) {
	s.options = append(s.options, options)
	if s.err != nil {
		return nil, s.err
	}
	return &UploadResult{URL: s.url}, nil
}

type countingCache struct {
	mu          sync.Mutex
	items       map[uuid.UUID]models.Product
	invalidated []uuid.UUID
}

func newCountingCache() *countingCache {
	return &countingCache{items: map[uuid.UUID]models.Product{}}
}

func (c *countingCache) Get(_ context.Context, id uuid.UUID) (*models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (c *countingCache) Set(_ context.Context, product *models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[product.ID] = *product
}

func (c *countingCache) Invalidate(_ context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
}
