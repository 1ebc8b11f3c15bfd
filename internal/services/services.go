package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   uuid.UUID
	Role models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.UserRoleAdmin
}

// CanAccess reports whether the actor may act on resources owned by ownerID.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.ID == ownerID
}

func validate(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return utils.NewValidationError(i18n.KeyInvalidData).WithDetails(utils.GetValidationErrors(err))
	}
	return nil
}

// notFound maps repository.ErrNotFound to a NotFound AppError and passes other errors through.
func notFound(err error, key string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFoundError(key)
	}
	return err
}

func productSummaries(products []models.Product) map[uuid.UUID]*models.ProductSummary {
	byID := make(map[uuid.UUID]*models.ProductSummary, len(products))
	for i := range products {
		byID[products[i].ID] = products[i].Summary()
	}
	return byID
}
