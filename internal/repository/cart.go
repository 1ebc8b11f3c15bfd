package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopwave/ecommerce-backend/internal/database"
	"github.com/shopwave/ecommerce-backend/internal/models"
)

type CartRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	// Save inserts a new cart (zero ID) or replaces an existing cart's items.
	Save(ctx context.Context, cart *models.Cart) error
}

type gormCartRepo struct{ db *gorm.DB }

func NewCartRepository(db *gorm.DB) CartRepository {
	return &gormCartRepo{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *gormCartRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Preload("Items", preloadItems).First(&cart, "user_id = ?", userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (r *gormCartRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Preload("Items", preloadItems).First(&cart, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (r *gormCartRepo) Save(ctx context.Context, cart *models.Cart) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		return saveCart(tx, cart)
	})
}

// saveCart writes the cart row and rewrites its items. The BeforeSave hook
// recomputes TotalAmount from cart.Items before the row is written.
func saveCart(tx *gorm.DB, cart *models.Cart) error {
	if cart.ID == uuid.Nil {
		if err := tx.Omit(clause.Associations).Create(cart).Error; err != nil {
			if err = translate(err); err == ErrDuplicate {
				return err
			}
			return fmt.Errorf("create cart: %w", err)
		}
	} else {
		if err := tx.Omit(clause.Associations).Save(cart).Error; err != nil {
			return fmt.Errorf("save cart: %w", err)
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}
	}

	if len(cart.Items) == 0 {
		return nil
	}
	for i := range cart.Items {
		cart.Items[i].ID = uuid.Nil
		cart.Items[i].CartID = cart.ID
	}
	if err := tx.Create(&cart.Items).Error; err != nil {
		return fmt.Errorf("insert cart items: %w", err)
	}
	return nil
}
