package app

import (
	"github.com/gin-gonic/gin"

	"github.com/stairforecast/backend/internal/server"
)

func wireRouter(cfg Config, handlerSet Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:     cfg.ServiceName,
		SKUHandler:      handlerSet.SKU,
		ForecastHandler: handlerSet.Forecast,
		UploadHandler:   handlerSet.Upload,
		ExportHandler:   handlerSet.Export,
	})
}
