package app

import (
	"gorm.io/gorm"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/repos"
)

type Repos struct {
	SKU             repos.SKURepo
	ShipTo          repos.ShipToRepo
	ForecastVersion repos.ForecastVersionRepo
	ForecastEntry   repos.ForecastEntryRepo
	UploadBatch     repos.UploadBatchRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		SKU:             repos.NewSKURepo(db, log),
		ShipTo:          repos.NewShipToRepo(db, log),
		ForecastVersion: repos.NewForecastVersionRepo(db, log),
		ForecastEntry:   repos.NewForecastEntryRepo(db, log),
		UploadBatch:     repos.NewUploadBatchRepo(db, log),
	}
}
