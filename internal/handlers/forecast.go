package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stairforecast/backend/internal/calendar"
	"github.com/stairforecast/backend/internal/forecast"
	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/services"
)

type ForecastHandler struct {
	log             *logger.Logger
	forecastService services.ForecastService
}

func NewForecastHandler(log *logger.Logger, forecastService services.ForecastService) *ForecastHandler {
	return &ForecastHandler{
		log:             log.With("handler", "ForecastHandler"),
		forecastService: forecastService,
	}
}

// GET /api/forecast?sku_id=&ship_to=&version=&mode=
func (h *ForecastHandler) Resolve(c *gin.Context) {
	query, err := parseResolveQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}
	result, err := h.forecastService.Resolve(c.Request.Context(), nil, query)
	if err != nil {
		h.log.Error("Failed to resolve staircase", "error", err)
		RespondError(c, http.StatusInternalServerError, "forecast_resolve_failed", err)
		return
	}
	RespondOK(c, result)
}

type ingestBody struct {
	SKUID     string `json:"sku_id"`
	ShipTo    string `json:"ship_to"`
	OrderDate string `json:"order_date"`
	Month     string `json:"month"`
	Version   *int   `json:"version"`
	Value     int64  `json:"value"`
}

// POST /api/forecast
func (h *ForecastHandler) Ingest(c *gin.Context) {
	var body ingestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	skuID, err := uuid.Parse(body.SKUID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_sku_id", err)
		return
	}
	version := services.DefaultIngestVersion
	if body.Version != nil {
		if *body.Version < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_version", fmt.Errorf("version must be non-negative"))
			return
		}
		version = *body.Version
	}

	entry, err := h.forecastService.IngestObservation(c.Request.Context(), nil, services.IngestRequest{
		SKUID:      skuID,
		ShipToCode: strings.TrimSpace(body.ShipTo),
		OrderDate:  body.OrderDate,
		Month:      body.Month,
		Version:    version,
		Value:      body.Value,
	})
	if err != nil {
		// Only caller-supplied input gets a 4xx; storage failures are ours.
		switch {
		case errors.Is(err, calendar.ErrInvalidLabel):
			RespondError(c, http.StatusBadRequest, "invalid_month_label", err)
		case errors.Is(err, services.ErrSKUNotFound):
			RespondError(c, http.StatusNotFound, "sku_not_found", err)
		default:
			h.log.Error("Failed to ingest observation", "error", err)
			RespondError(c, http.StatusInternalServerError, "forecast_ingest_failed", err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func parseResolveQuery(c *gin.Context) (services.ResolveQuery, error) {
	var query services.ResolveQuery

	if raw := strings.TrimSpace(c.Query("sku_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return query, fmt.Errorf("invalid sku_id %q", raw)
		}
		query.SKUID = &id
	}

	selector, err := forecast.ParseSelector(c.Query("version"))
	if err != nil {
		return query, err
	}
	query.Selector = selector

	query.ShipToCode = strings.TrimSpace(c.Query("ship_to"))

	switch strings.ToLower(strings.TrimSpace(c.Query("mode"))) {
	case "", "aggregate":
		query.Mode = forecast.ModeAggregate
	case "ship_to", "per_ship_to":
		query.Mode = forecast.ModePerShipTo
	default:
		return query, errors.New("mode must be aggregate or ship_to")
	}
	return query, nil
}
