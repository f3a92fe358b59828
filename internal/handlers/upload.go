package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/services"
)

type UploadHandler struct {
	log           *logger.Logger
	ingestService services.IngestService
}

func NewUploadHandler(log *logger.Logger, ingestService services.IngestService) *UploadHandler {
	return &UploadHandler{
		log:           log.With("handler", "UploadHandler"),
		ingestService: ingestService,
	}
}

// POST /api/upload
// Multipart form: "file" is the CSV, optional "version" overrides the
// default revision applied to rows without an ORDER VERSION value.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", fmt.Errorf("form field \"file\" is required"))
		return
	}

	defaultVersion := services.DefaultIngestVersion
	if raw := strings.TrimSpace(c.PostForm("version")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_version", fmt.Errorf("invalid version %q", raw))
			return
		}
		defaultVersion = parsed
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer f.Close()

	result, err := h.ingestService.BulkIngest(c.Request.Context(), nil, fileHeader.Filename, f, defaultVersion)
	if err != nil {
		if errors.Is(err, services.ErrMissingRequiredColumn) || errors.Is(err, services.ErrEmptyUpload) {
			RespondError(c, http.StatusBadRequest, "invalid_upload", err)
			return
		}
		h.log.Error("Bulk ingest failed", "file", fileHeader.Filename, "error", err)
		RespondError(c, http.StatusInternalServerError, "upload_failed", err)
		return
	}
	RespondOK(c, result)
}

// GET /api/upload/batches
func (h *UploadHandler) ListBatches(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			RespondError(c, http.StatusBadRequest, "invalid_limit", fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = parsed
	}
	batches, err := h.ingestService.ListBatches(c.Request.Context(), nil, limit)
	if err != nil {
		h.log.Error("Failed to list upload batches", "error", err)
		RespondError(c, http.StatusInternalServerError, "batch_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"batches": batches})
}
