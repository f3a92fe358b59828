package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/types"
)

type SKURepo interface {
	Create(ctx context.Context, tx *gorm.DB, sku *types.SKU) (*types.SKU, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SKU, error)
	GetByPartNumber(ctx context.Context, tx *gorm.DB, partNumber string) (*types.SKU, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.SKU, error)
}

type skuRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSKURepo(db *gorm.DB, baseLog *logger.Logger) SKURepo {
	return &skuRepo{db: db, log: baseLog.With("repo", "SKURepo")}
}

func (r *skuRepo) Create(ctx context.Context, tx *gorm.DB, sku *types.SKU) (*types.SKU, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if sku.ID == uuid.Nil {
		sku.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(sku).Error; err != nil {
		return nil, err
	}
	return sku, nil
}

func (r *skuRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SKU, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var sku types.SKU
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sku, nil
}

func (r *skuRepo) GetByPartNumber(ctx context.Context, tx *gorm.DB, partNumber string) (*types.SKU, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var sku types.SKU
	err := transaction.WithContext(ctx).Where("part_number = ?", partNumber).First(&sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sku, nil
}

func (r *skuRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.SKU, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SKU
	if err := transaction.WithContext(ctx).
		Order("part_number asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
