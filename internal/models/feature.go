// internal/models/feature.go
package models

// FeatureImage is a storefront banner.
type FeatureImage struct {
	BaseModel
	Image string `json:"image" gorm:"size:1024;not null"`
}
