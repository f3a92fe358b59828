package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/services"
)

type SKUHandler struct {
	log        *logger.Logger
	skuService services.SKUService
}

func NewSKUHandler(log *logger.Logger, skuService services.SKUService) *SKUHandler {
	return &SKUHandler{
		log:        log.With("handler", "SKUHandler"),
		skuService: skuService,
	}
}

// GET /api/skus
func (h *SKUHandler) List(c *gin.Context) {
	skus, err := h.skuService.List(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("Failed to list SKUs", "error", err)
		RespondError(c, http.StatusInternalServerError, "sku_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"skus": skus})
}

// POST /api/skus
func (h *SKUHandler) Create(c *gin.Context) {
	var req services.CreateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	sku, err := h.skuService.Create(c.Request.Context(), nil, req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicatePartNumber) {
			RespondError(c, http.StatusConflict, "duplicate_part_number", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "sku_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sku": sku})
}
