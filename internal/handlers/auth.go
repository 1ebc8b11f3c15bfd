// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopwave/ecommerce-backend/internal/config"
	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/middleware"
	"github.com/shopwave/ecommerce-backend/internal/services"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	cookie      config.CookieConfig
	maxAge      int
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService, cookie config.CookieConfig, tokenTTLSeconds int) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cookie:      cookie,
		maxAge:      tokenTTLSeconds,
	}
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, i18n.KeyAuthRegisterSuccess, user)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	h.setCookie(c, res.Token, h.maxAge)
	utils.MessageResponse(c, i18n.KeyAuthLoginSuccess, gin.H{"user": res.User})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	utils.MessageResponse(c, i18n.KeyAuthLogoutSuccess, nil)
}

// GET /auth/check-auth always answers 200; success tells whether the session is valid.
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	token := middleware.TokenFromRequest(c, h.cookie.Name)
	if token == "" {
		c.JSON(http.StatusOK, utils.APIResponse{Success: false, Message: i18n.T(lang, i18n.KeyAuthUnauthorised)})
		return
	}

	user, err := h.authService.CheckAuth(c.Request.Context(), token)
	if err != nil {
		if !utils.IsKind(err, utils.KindUnauthorized) {
			utils.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.APIResponse{Success: false, Message: i18n.T(lang, i18n.KeyAuthUnauthorised)})
		return
	}

	utils.MessageResponse(c, i18n.KeyAuthAuthenticated, gin.H{"user": user})
}

// PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), actor.ID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyUserProfileUpdated, gin.H{"user": user})
}

// POST /auth/profile/image
func (h *AuthHandler) UploadProfileImage(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.HandleError(c, utils.NewValidationError(i18n.KeyUploadFailed))
		return
	}
	defer file.Close()

	user, err := h.userService.UploadProfileImage(c.Request.Context(), actor.ID, file, header)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyUserProfileUpdated, gin.H{"user": user})
}

// DELETE /auth/profile
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), actor.ID); err != nil {
		utils.HandleError(c, err)
		return
	}

	h.setCookie(c, "", -1)
	utils.MessageResponse(c, i18n.KeyAuthAccountDeleted, nil)
}

// PUT /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req services.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), actor.ID, &req); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyAuthPasswordChanged, nil)
}
