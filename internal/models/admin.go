// internal/models/admin.go
package models

import (
	"github.com/google/uuid"
)

// AuditLog records one state-changing admin request.
type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"userId" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null;index"`
	ResourceType string     `json:"resourceType" gorm:"size:50;index"`
	ResourceID   *uuid.UUID `json:"resourceId" gorm:"type:uuid;index"`
	IPAddress    string     `json:"ipAddress" gorm:"size:64"`
	UserAgent    string     `json:"userAgent" gorm:"size:512"`
	StatusCode   int        `json:"statusCode"`
	Payload      JSONB      `json:"payload" gorm:"type:jsonb"`
}
