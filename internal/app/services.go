package app

import (
	"gorm.io/gorm"

	redisclient "github.com/stairforecast/backend/internal/clients/redis"
	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/services"
)

type Services struct {
	SKU      services.SKUService
	Forecast services.ForecastService
	Ingest   services.IngestService
	Export   services.ExportService
	Cache    redisclient.Cache
}

func wireServices(db *gorm.DB, log *logger.Logger, repoSet Repos) Services {
	log.Info("Wiring services...")

	// Cache is best-effort: no REDIS_ADDR or an unreachable server means
	// every resolve goes to the database.
	var responseCache services.Cache
	var cache redisclient.Cache
	if c, err := redisclient.NewCache(log); err != nil {
		log.Warn("Running without response cache", "reason", err)
	} else {
		cache = c
		responseCache = c
	}

	forecastSvc := services.NewForecastService(db, log, repoSet.ForecastVersion, repoSet.ForecastEntry, repoSet.SKU, repoSet.ShipTo, responseCache)

	return Services{
		SKU:      services.NewSKUService(db, log, repoSet.SKU, repoSet.ShipTo, repoSet.ForecastEntry),
		Forecast: forecastSvc,
		Ingest:   services.NewIngestService(db, log, repoSet.SKU, repoSet.ShipTo, repoSet.ForecastVersion, repoSet.ForecastEntry, repoSet.UploadBatch, responseCache),
		Export:   services.NewExportService(log, forecastSvc),
		Cache:    cache,
	}
}
