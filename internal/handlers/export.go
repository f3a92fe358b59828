package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/services"
)

type ExportHandler struct {
	log           *logger.Logger
	exportService services.ExportService
	skuService    services.SKUService
}

func NewExportHandler(log *logger.Logger, exportService services.ExportService, skuService services.SKUService) *ExportHandler {
	return &ExportHandler{
		log:           log.With("handler", "ExportHandler"),
		exportService: exportService,
		skuService:    skuService,
	}
}

// GET /api/export?sku_id=&ship_to=&version=&mode=
func (h *ExportHandler) Export(c *gin.Context) {
	query, err := parseResolveQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}

	title := h.exportTitle(c, query)
	filename := fmt.Sprintf("forecast-%s.csv", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exportService.WriteCSV(c.Request.Context(), nil, query, title, c.Writer); err != nil {
		// Headers may already be out; log and abort the stream.
		h.log.Error("CSV export failed", "error", err)
		c.Abort()
		return
	}
}

func (h *ExportHandler) exportTitle(c *gin.Context, query services.ResolveQuery) string {
	if query.SKUID == nil {
		return "ALL SKUS"
	}
	sku, err := h.skuService.Get(c.Request.Context(), nil, *query.SKUID)
	if err != nil || sku == nil {
		return query.SKUID.String()
	}
	return strings.TrimSpace(sku.PartNumber + " " + sku.PartName)
}
