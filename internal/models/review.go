// internal/models/review.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Review struct {
	BaseModel
	ProductID     uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	UserID        uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	UserName      string    `json:"userName" gorm:"size:100;not null"`
	ReviewMessage string    `json:"reviewMessage" gorm:"type:text;not null"`
	ReviewValue   int       `json:"reviewValue" gorm:"not null"`
}

// AverageRating is the unweighted mean of the review values rounded to two decimals.
func AverageRating(reviews []Review) decimal.Decimal {
	if len(reviews) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.ReviewValue)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(reviews)))).Round(2)
}
