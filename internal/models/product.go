// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Title         string          `json:"title" gorm:"size:255;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Image         string          `json:"image" gorm:"size:1024"`
	Category      string          `json:"category" gorm:"size:100;index"`
	Brand         string          `json:"brand" gorm:"size:100;index"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	SalePrice     decimal.Decimal `json:"salePrice" gorm:"type:decimal(12,2);not null;default:0"`
	TotalStock    int             `json:"totalStock" gorm:"not null;default:0"`
	AverageReview decimal.Decimal `json:"averageReview" gorm:"type:decimal(3,2);not null;default:0"`
}

// EffectivePrice is the sale price when one is set, the list price otherwise.
func EffectivePrice(price, salePrice decimal.Decimal) decimal.Decimal {
	if salePrice.IsPositive() {
		return salePrice
	}
	return price
}

// ProductSummary carries the display fields expanded into cart and order line items.
type ProductSummary struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Image       string          `json:"image"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	SalePrice   decimal.Decimal `json:"salePrice"`
	TotalStock  int             `json:"totalStock"`
}

func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{
		ID:          p.ID,
		Title:       p.Title,
		Image:       p.Image,
		Description: p.Description,
		Price:       p.Price,
		SalePrice:   p.SalePrice,
		TotalStock:  p.TotalStock,
	}
}
