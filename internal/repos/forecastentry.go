package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/types"
)

type ForecastEntryRepo interface {
	// Upsert writes one observation. A row already occupying the
	// (version, sku, ship-to, snapshot month) coordinate has its value
	// overwritten, never duplicated.
	Upsert(ctx context.Context, tx *gorm.DB, entry *types.ForecastEntry) (*types.ForecastEntry, error)
	CountBySKU(ctx context.Context, tx *gorm.DB, skuID uuid.UUID) (int64, error)
}

type forecastEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewForecastEntryRepo(db *gorm.DB, baseLog *logger.Logger) ForecastEntryRepo {
	return &forecastEntryRepo{db: db, log: baseLog.With("repo", "ForecastEntryRepo")}
}

func (r *forecastEntryRepo) Upsert(ctx context.Context, tx *gorm.DB, entry *types.ForecastEntry) (*types.ForecastEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.OrderMonth = entry.OrderMonth.UTC()

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "forecast_version_id"},
				{Name: "sku_id"},
				{Name: "ship_to_id"},
				{Name: "order_month"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *forecastEntryRepo) CountBySKU(ctx context.Context, tx *gorm.DB, skuID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var n int64
	if err := transaction.WithContext(ctx).
		Model(&types.ForecastEntry{}).
		Where("sku_id = ?", skuID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
