package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopwave/ecommerce-backend/internal/database"
	"github.com/shopwave/ecommerce-backend/internal/models"
)

type OrderRepository interface {
	// CreateWithCartPrune inserts the order and, when cartID is set, drops every
	// line of that cart whose product was ordered. Both happen in one transaction.
	CreateWithCartPrune(ctx context.Context, order *models.Order, cartID *uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error
	ExistsWithProductInStatuses(ctx context.Context, userID, productID uuid.UUID, statuses []models.OrderStatus) (bool, error)
}

type gormOrderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepo{db: db}
}

func (r *gormOrderRepo) CreateWithCartPrune(ctx context.Context, order *models.Order, cartID *uuid.UUID) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if cartID == nil {
			return nil
		}

		var cart models.Cart
		err := tx.Preload("Items", preloadItems).
			First(&cart, "id = ? AND user_id = ?", *cartID, order.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load source cart: %w", err)
		}

		if cart.RemoveProducts(order.ProductIDs()) == 0 {
			return nil
		}
		return saveCart(tx, &cart)
	})
}

func (r *gormOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("CartItems").First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *gormOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("CartItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *gormOrderRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Preload("CartItems").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

func (r *gormOrderRepo) Update(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Model(order).Select(
		"payment_status", "order_status", "razorpay_order_id", "razorpay_payment_id", "updated_at",
	).Updates(order).Error
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (r *gormOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.updateColumn(ctx, id, "order_status", status)
}

func (r *gormOrderRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	return r.updateColumn(ctx, id, "payment_status", status)
}

func (r *gormOrderRepo) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormOrderRepo) ExistsWithProductInStatuses(ctx context.Context, userID, productID uuid.UUID, statuses []models.OrderStatus) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.order_status IN ?", userID, productID, statuses).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check purchase: %w", err)
	}
	return count > 0, nil
}
