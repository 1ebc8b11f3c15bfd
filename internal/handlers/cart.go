package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/services"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// POST /cart/add
func (h *CartHandler) AddItem(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req services.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == "" {
		req.UserID = actor.ID.String()
	}
	if !ensureOwner(c, actor, req.UserID) {
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyCartItemAdded, cart)
}

// GET /cart/:userId
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, cart)
}

// PUT /cart/update
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req services.UpdateCartRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == "" {
		req.UserID = actor.ID.String()
	}
	if !ensureOwner(c, actor, req.UserID) {
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyCartUpdated, cart)
}

// DELETE /cart/:userId/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyCartItemRemoved, cart)
}

// DELETE /cart/:userId
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	cart, err := h.cartService.Clear(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageResponse(c, i18n.KeyCartCleared, cart)
}
