package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/stairforecast/backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName     string
	SKUHandler      *handlers.SKUHandler
	ForecastHandler *handlers.ForecastHandler
	UploadHandler   *handlers.UploadHandler
	ExportHandler   *handlers.ExportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(otelgin.Middleware(cfg.ServiceName))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/skus", cfg.SKUHandler.List)
		api.POST("/skus", cfg.SKUHandler.Create)

		api.GET("/forecast", cfg.ForecastHandler.Resolve)
		api.POST("/forecast", cfg.ForecastHandler.Ingest)

		api.POST("/upload", cfg.UploadHandler.Upload)
		api.GET("/upload/batches", cfg.UploadHandler.ListBatches)

		api.GET("/export", cfg.ExportHandler.Export)
	}

	return router
}

func allowedOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOW_ORIGINS"))
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:5173"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
