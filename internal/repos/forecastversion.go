package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/types"
)

type ForecastVersionRepo interface {
	// Upsert returns the version row for (month, version), creating it when
	// absent. ON CONFLICT DO NOTHING keeps concurrent ingests of the same
	// pair to a single winner.
	Upsert(ctx context.Context, tx *gorm.DB, month time.Time, version int) (*types.ForecastVersion, error)
	// ListWithEntries loads all versions ordered by month then version, each
	// with its entries (optionally filtered to one SKU / ship-to) joined to
	// their SKU and ShipTo.
	ListWithEntries(ctx context.Context, tx *gorm.DB, skuID *uuid.UUID, shipToID *uuid.UUID) ([]*types.ForecastVersion, error)
}

type forecastVersionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewForecastVersionRepo(db *gorm.DB, baseLog *logger.Logger) ForecastVersionRepo {
	return &forecastVersionRepo{db: db, log: baseLog.With("repo", "ForecastVersionRepo")}
}

func (r *forecastVersionRepo) Upsert(ctx context.Context, tx *gorm.DB, month time.Time, version int) (*types.ForecastVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	row := &types.ForecastVersion{
		ID:      uuid.New(),
		Month:   month.UTC(),
		Version: version,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "month"}, {Name: "version"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	// Re-read: on conflict the insert was a no-op and the generated ID is
	// not the stored one.
	var stored types.ForecastVersion
	if err := transaction.WithContext(ctx).
		Where("month = ? AND version = ?", month.UTC(), version).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *forecastVersionRepo) ListWithEntries(ctx context.Context, tx *gorm.DB, skuID *uuid.UUID, shipToID *uuid.UUID) ([]*types.ForecastVersion, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ForecastVersion
	query := transaction.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			db = db.Order("order_month asc")
			if skuID != nil {
				db = db.Where("sku_id = ?", *skuID)
			}
			if shipToID != nil {
				db = db.Where("ship_to_id = ?", *shipToID)
			}
			return db
		}).
		Preload("Entries.SKU").
		Preload("Entries.ShipTo").
		Order("month asc").
		Order("version asc")

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
