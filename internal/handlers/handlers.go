package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/services"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

// bindJSON decodes the body into req and writes a 400 on malformed input.
// Field rules are checked by the services.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.HandleError(c, utils.NewValidationError(i18n.KeyValidationInvalid, "input"))
		return false
	}
	return true
}

// actorFrom builds the service actor from the claims AuthRequired stored.
func actorFrom(c *gin.Context) (services.Actor, bool) {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return services.Actor{}, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.UnauthorizedResponse(c, i18n.KeyAuthInvalidToken)
		return services.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(c)
	return services.Actor{ID: id, Role: models.UserRole(role)}, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := utils.ParseID(c.Param(name), name)
	if err != nil {
		utils.HandleError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// ensureOwner checks a userId carried in a request body against the caller.
func ensureOwner(c *gin.Context, actor services.Actor, userID string) bool {
	id, err := uuid.Parse(userID)
	if err != nil {
		utils.HandleError(c, utils.NewValidationError(i18n.KeyValidationInvalid, "userId"))
		return false
	}
	if !actor.CanAccess(id) {
		utils.ForbiddenResponse(c, i18n.KeyAuthForbiddenOwner)
		return false
	}
	return true
}
