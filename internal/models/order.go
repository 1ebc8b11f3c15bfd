// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AddressInfo struct {
	Address string `json:"address" gorm:"column:address;size:500;not null" validate:"required"`
	City    string `json:"city" gorm:"column:city;size:100;not null" validate:"required"`
	Pincode string `json:"pincode" gorm:"column:pincode;size:20;not null" validate:"required,pincode"`
	Phone   string `json:"phone" gorm:"column:phone;size:30;not null" validate:"required"`
	Notes   string `json:"notes,omitempty" gorm:"column:notes;type:text"`
}

// Order is a snapshot taken at checkout. Line items never change after creation.
type Order struct {
	BaseModel
	UserID            uuid.UUID       `json:"userId" gorm:"type:uuid;not null;index"`
	CartID            *uuid.UUID      `json:"cartId,omitempty" gorm:"type:uuid"`
	CartItems         []OrderItem     `json:"cartItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	AddressInfo       AddressInfo     `json:"addressInfo" gorm:"embedded;embeddedPrefix:address_"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod" gorm:"type:varchar(20);not null"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(20);not null;default:'pending';index"`
	OrderStatus       OrderStatus     `json:"orderStatus" gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount       decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	RazorpayOrderID   string          `json:"razorpayOrderId,omitempty" gorm:"column:razorpay_order_id;size:255;index"`
	RazorpayPaymentID string          `json:"razorpayPaymentId,omitempty" gorm:"column:razorpay_payment_id;size:255"`

	User *UserSummary `json:"user,omitempty" gorm:"-"`
}

type OrderItem struct {
	ID        uuid.UUID       `json:"-" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"productId" gorm:"type:uuid;not null;index"`
	Title     string          `json:"title,omitempty" gorm:"size:255"`
	Image     string          `json:"image,omitempty" gorm:"size:1024"`
	Quantity  int             `json:"quantity" gorm:"not null;check:order_item_quantity,quantity >= 1"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`

	Product *ProductSummary `json:"product,omitempty" gorm:"-"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ProductIDs is the set of products the order was placed for.
func (o *Order) ProductIDs() map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{}, len(o.CartItems))
	for _, item := range o.CartItems {
		ids[item.ProductID] = struct{}{}
	}
	return ids
}

// AmountInMinorUnits converts the order total to the smallest currency unit (paise, cents).
func (o *Order) AmountInMinorUnits() int64 {
	return o.TotalAmount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
