package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/services"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type FeatureHandler struct {
	featureService *services.FeatureService
}

func NewFeatureHandler(featureService *services.FeatureService) *FeatureHandler {
	return &FeatureHandler{
		featureService: featureService,
	}
}

// GET /common/feature/get
func (h *FeatureHandler) List(c *gin.Context) {
	images, err := h.featureService.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, images)
}

// POST /common/feature/add accepts {"image": url} or a multipart "file".
func (h *FeatureHandler) Add(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			utils.HandleError(c, utils.NewValidationError(i18n.KeyUploadFailed))
			return
		}
		defer file.Close()

		image, err := h.featureService.AddUpload(c.Request.Context(), file, header)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		utils.CreatedResponse(c, i18n.KeyFeatureAdded, image)
		return
	}

	var req services.AddFeatureImageRequest
	if !bindJSON(c, &req) {
		return
	}

	image, err := h.featureService.AddByURL(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, i18n.KeyFeatureAdded, image)
}
