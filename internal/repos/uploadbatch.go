package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/types"
)

type UploadBatchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, batch *types.UploadBatch) (*types.UploadBatch, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UploadBatch, error)
}

type uploadBatchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUploadBatchRepo(db *gorm.DB, baseLog *logger.Logger) UploadBatchRepo {
	return &uploadBatchRepo{db: db, log: baseLog.With("repo", "UploadBatchRepo")}
}

func (r *uploadBatchRepo) Create(ctx context.Context, tx *gorm.DB, batch *types.UploadBatch) (*types.UploadBatch, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(batch).Error; err != nil {
		return nil, err
	}
	return batch, nil
}

func (r *uploadBatchRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UploadBatch, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	var results []*types.UploadBatch
	if err := transaction.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
