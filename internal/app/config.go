package app

import (
	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/utils"
)

type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	Port           int
	DefaultVersion int
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		ServiceName:    utils.GetEnv("SERVICE_NAME", "stairforecast", log),
		Environment:    utils.GetEnv("ENVIRONMENT", "development", log),
		Version:        utils.GetEnv("SERVICE_VERSION", "dev", log),
		Port:           utils.GetEnvAsInt("PORT", 8080, log),
		DefaultVersion: utils.GetEnvAsInt("DEFAULT_FORECAST_VERSION", 10, log),
	}
}
