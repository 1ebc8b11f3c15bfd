//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/shopwave/ecommerce-backend/internal/config"
	"github.com/shopwave/ecommerce-backend/internal/database"
	"github.com/shopwave/ecommerce-backend/internal/models"
)

// PostgresTestSuite runs the repositories against a real database. It reads
// the usual DB_* settings with a TEST_ prefix, e.g. TEST_DB_NAME=shopwave_test.
//
//	go test -tags integration ./internal/repository/...
type PostgresTestSuite struct {
	suite.Suite
	db       *gorm.DB
	products ProductRepository
	carts    CartRepository
	orders   OrderRepository
	ctx      context.Context
}

func (s *PostgresTestSuite) SetupSuite() {
	if os.Getenv("TEST_DB_NAME") == "" {
		s.T().Skip("TEST_DB_NAME not set")
	}

	var cfg config.DatabaseConfig
	s.Require().NoError(env.ParseWithOptions(&cfg, env.Options{Prefix: "TEST_"}))

	db, err := database.Initialize(cfg)
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(db))

	s.db = db
	s.products = NewProductRepository(db)
	s.carts = NewCartRepository(db)
	s.orders = NewOrderRepository(db)
	s.ctx = context.Background()
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.db != nil {
		database.Close(s.db)
	}
}

func (s *PostgresTestSuite) product(title, category, brand string, price float64) models.Product {
	p := models.Product{
		Title:      title,
		Category:   category,
		Brand:      brand,
		Price:      decimal.NewFromFloat(price),
		TotalStock: 10,
	}
	s.Require().NoError(s.products.Create(s.ctx, &p))
	return p
}

func (s *PostgresTestSuite) order(userID uuid.UUID, status models.OrderStatus, cartID *uuid.UUID, items ...models.Product) *models.Order {
	o := &models.Order{
		UserID:        userID,
		AddressInfo:   models.AddressInfo{Address: "1 MG Road", City: "Pune", Pincode: "411001", Phone: "9999999999"},
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending,
		OrderStatus:   status,
		TotalAmount:   decimal.NewFromInt(1),
	}
	for _, p := range items {
		o.CartItems = append(o.CartItems, models.OrderItem{ProductID: p.ID, Title: p.Title, Quantity: 1, Price: p.Price})
	}
	s.Require().NoError(s.orders.CreateWithCartPrune(s.ctx, o, cartID))
	return o
}

func (s *PostgresTestSuite) TestSearchFacetsAndPaging() {
	// A fresh category keeps the counts independent of other rows.
	category := "cat-" + uuid.NewString()[:8]
	cheap := s.product("Alpha Tee", category, "acme", 10)
	mid := s.product("Beta Tee", category, "zenith", 20)
	s.product("Gamma Tee", category, "other", 30)
	s.product("Delta Tee", "elsewhere-"+category, "acme", 5)

	found, total, err := s.products.Search(s.ctx, ProductFilter{
		Categories: []string{category},
		Brands:     []string{"acme", "zenith"},
		SortBy:     SortPriceHighToLow,
		Limit:      1,
	})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(found, 1)
	s.Equal(mid.ID, found[0].ID)

	found, _, err = s.products.Search(s.ctx, ProductFilter{
		Categories: []string{category},
		Brands:     []string{"acme", "zenith"},
		SortBy:     SortPriceHighToLow,
		Limit:      1,
		Offset:     1,
	})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(cheap.ID, found[0].ID)
}

func (s *PostgresTestSuite) TestSearchKeywordEscapesWildcards() {
	marker := uuid.NewString()[:8]
	hit := s.product("Runner 100% "+marker, "shoes", "acme", 50)
	s.product("Runner 1000 "+marker, "shoes", "acme", 50)

	found, err := s.products.SearchKeyword(s.ctx, "100% "+marker)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(hit.ID, found[0].ID)
}

func (s *PostgresTestSuite) TestCartSaveReplacesItems() {
	shirt := s.product("Shirt", "apparel", "acme", 40)
	hat := s.product("Hat", "apparel", "acme", 15)

	cart := &models.Cart{
		UserID:        uuid.New(),
		PaymentMethod: models.CartPaymentCOD,
		Items: []models.CartItem{
			{ProductID: shirt.ID, Quantity: 2, Price: shirt.Price},
			{ProductID: hat.ID, Quantity: 1, Price: hat.Price},
		},
	}
	s.Require().NoError(s.carts.Save(s.ctx, cart))

	cart.Items = cart.Items[1:]
	cart.Items[0].Quantity = 3
	s.Require().NoError(s.carts.Save(s.ctx, cart))

	stored, err := s.carts.GetByUserID(s.ctx, cart.UserID)
	s.Require().NoError(err)
	s.Require().Len(stored.Items, 1)
	s.Equal(hat.ID, stored.Items[0].ProductID)
	s.Equal(3, stored.Items[0].Quantity)
	s.True(decimal.NewFromInt(45).Equal(stored.TotalAmount), stored.TotalAmount.String())

	// One cart per user.
	err = s.carts.Save(s.ctx, &models.Cart{UserID: cart.UserID, PaymentMethod: models.CartPaymentCOD})
	s.ErrorIs(err, ErrDuplicate)
}

func (s *PostgresTestSuite) TestCreateWithCartPrune() {
	shirt := s.product("Shirt", "apparel", "acme", 40)
	hat := s.product("Hat", "apparel", "acme", 15)
	userID := uuid.New()

	cart := &models.Cart{
		UserID:        userID,
		PaymentMethod: models.CartPaymentCOD,
		Items: []models.CartItem{
			{ProductID: shirt.ID, Quantity: 1, Price: shirt.Price},
			{ProductID: hat.ID, Quantity: 1, Price: hat.Price},
		},
	}
	s.Require().NoError(s.carts.Save(s.ctx, cart))

	// Someone else's order never touches this cart.
	s.order(uuid.New(), models.OrderStatusPending, &cart.ID, shirt)
	stored, err := s.carts.GetByID(s.ctx, cart.ID)
	s.Require().NoError(err)
	s.Len(stored.Items, 2)

	placed := s.order(userID, models.OrderStatusPending, &cart.ID, shirt)
	stored, err = s.carts.GetByID(s.ctx, cart.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Items, 1)
	s.Equal(hat.ID, stored.Items[0].ProductID)
	s.True(decimal.NewFromInt(15).Equal(stored.TotalAmount))

	loaded, err := s.orders.GetByID(s.ctx, placed.ID)
	s.Require().NoError(err)
	s.Require().Len(loaded.CartItems, 1)
	s.Equal(shirt.ID, loaded.CartItems[0].ProductID)
}

func (s *PostgresTestSuite) TestExistsWithProductInStatuses() {
	shirt := s.product("Shirt", "apparel", "acme", 40)
	hat := s.product("Hat", "apparel", "acme", 15)
	buyer := uuid.New()
	purchased := []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusConfirmed}

	placed := s.order(buyer, models.OrderStatusPending, nil, shirt)

	ok, err := s.orders.ExistsWithProductInStatuses(s.ctx, buyer, shirt.ID, purchased)
	s.Require().NoError(err)
	s.False(ok, "pending orders do not count")

	s.Require().NoError(s.orders.UpdateStatus(s.ctx, placed.ID, models.OrderStatusDelivered))

	ok, err = s.orders.ExistsWithProductInStatuses(s.ctx, buyer, shirt.ID, purchased)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.orders.ExistsWithProductInStatuses(s.ctx, buyer, hat.ID, purchased)
	s.Require().NoError(err)
	s.False(ok, "other product")

	ok, err = s.orders.ExistsWithProductInStatuses(s.ctx, uuid.New(), shirt.ID, purchased)
	s.Require().NoError(err)
	s.False(ok, "other buyer")
}

func (s *PostgresTestSuite) TestAuditPayloadRoundTrip() {
	resource := uuid.New()
	entry := &models.AuditLog{
		Action:       "PUT /api/admin/orders/:id/status",
		ResourceType: "orders",
		ResourceID:   &resource,
		StatusCode:   200,
		Payload:      models.JSONB{"orderStatus": "shipped"},
	}
	s.Require().NoError(NewAuditLogRepository(s.db).Create(s.ctx, entry))

	var stored models.AuditLog
	s.Require().NoError(s.db.First(&stored, "id = ?", entry.ID).Error)
	s.Equal("shipped", stored.Payload["orderStatus"])
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}
