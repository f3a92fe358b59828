package app

import (
	"github.com/stairforecast/backend/internal/handlers"
	"github.com/stairforecast/backend/internal/logger"
)

type Handlers struct {
	SKU      *handlers.SKUHandler
	Forecast *handlers.ForecastHandler
	Upload   *handlers.UploadHandler
	Export   *handlers.ExportHandler
}

func wireHandlers(log *logger.Logger, serviceSet Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		SKU:      handlers.NewSKUHandler(log, serviceSet.SKU),
		Forecast: handlers.NewForecastHandler(log, serviceSet.Forecast),
		Upload:   handlers.NewUploadHandler(log, serviceSet.Ingest),
		Export:   handlers.NewExportHandler(log, serviceSet.Export, serviceSet.SKU),
	}
}
