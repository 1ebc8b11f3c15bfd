// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is unique per user; the unique index on user_id backs the one-cart rule.
type Cart struct {
	BaseModel
	UserID        uuid.UUID         `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	PaymentMethod CartPaymentMethod `json:"paymentMethod" gorm:"type:varchar(10);not null;default:'COD'"`
	Items         []CartItem        `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalAmount   decimal.Decimal   `json:"totalAmount" gorm:"type:decimal(12,2);not null;default:0"`
}

type CartItem struct {
	ID        uuid.UUID       `json:"-" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CartID    uuid.UUID       `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"productId" gorm:"type:uuid;not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null;check:quantity >= 1"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	SalePrice decimal.Decimal `json:"salePrice" gorm:"type:decimal(12,2);not null;default:0"`
	Position  int             `json:"-" gorm:"not null;default:0"`

	Product *ProductSummary `json:"product,omitempty" gorm:"-"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// LineTotal prices the line at its snapshot, preferring the sale price.
func (i CartItem) LineTotal() decimal.Decimal {
	return EffectivePrice(i.Price, i.SalePrice).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// RecalculateTotal derives TotalAmount from the current items. It runs on every save.
func (c *Cart) RecalculateTotal() {
	total := decimal.Zero
	for i := range c.Items {
		c.Items[i].Position = i
		total = total.Add(c.Items[i].LineTotal())
	}
	c.TotalAmount = total
}

func (c *Cart) BeforeSave(tx *gorm.DB) error {
	c.RecalculateTotal()
	return nil
}

// FindItem returns the index of the line for productID, or -1.
func (c *Cart) FindItem(productID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// RemoveProducts drops every line whose product is in ids and reports how many went.
func (c *Cart) RemoveProducts(ids map[uuid.UUID]struct{}) int {
	kept := c.Items[:0]
	removed := 0
	for _, item := range c.Items {
		if _, ok := ids[item.ProductID]; ok {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	return removed
}
