package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/types"
)

type ShipToRepo interface {
	Create(ctx context.Context, tx *gorm.DB, shipTo *types.ShipTo) (*types.ShipTo, error)
	GetBySKUAndCode(ctx context.Context, tx *gorm.DB, skuID uuid.UUID, code string) (*types.ShipTo, error)
	ListBySKU(ctx context.Context, tx *gorm.DB, skuID uuid.UUID) ([]*types.ShipTo, error)
}

type shipToRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShipToRepo(db *gorm.DB, baseLog *logger.Logger) ShipToRepo {
	return &shipToRepo{db: db, log: baseLog.With("repo", "ShipToRepo")}
}

func (r *shipToRepo) Create(ctx context.Context, tx *gorm.DB, shipTo *types.ShipTo) (*types.ShipTo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if shipTo.ID == uuid.Nil {
		shipTo.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(shipTo).Error; err != nil {
		return nil, err
	}
	return shipTo, nil
}

func (r *shipToRepo) GetBySKUAndCode(ctx context.Context, tx *gorm.DB, skuID uuid.UUID, code string) (*types.ShipTo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var shipTo types.ShipTo
	err := transaction.WithContext(ctx).
		Where("sku_id = ? AND code = ?", skuID, code).
		First(&shipTo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shipTo, nil
}

func (r *shipToRepo) ListBySKU(ctx context.Context, tx *gorm.DB, skuID uuid.UUID) ([]*types.ShipTo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ShipTo
	if err := transaction.WithContext(ctx).
		Where("sku_id = ?", skuID).
		Order("code asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
