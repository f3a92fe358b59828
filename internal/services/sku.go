package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stairforecast/backend/internal/logger"
	"github.com/stairforecast/backend/internal/repos"
	"github.com/stairforecast/backend/internal/types"
)

// ErrDuplicatePartNumber signals a create against an existing business key.
var ErrDuplicatePartNumber = errors.New("part number already exists")

// SKUView decorates a catalog row with its ship-to groups and how many
// forecast cells reference it.
type SKUView struct {
	*types.SKU
	EntryCount int64 `json:"entry_count"`
}

type CreateSKURequest struct {
	PartNumber string   `json:"part_number"`
	PartName   string   `json:"part_name"`
	OrderCode  string   `json:"order"`
	ShipTos    []string `json:"ship_tos"`
}

type SKUService interface {
	List(ctx context.Context, tx *gorm.DB) ([]*SKUView, error)
	// Get returns nil without error when the id is unknown.
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SKU, error)
	Create(ctx context.Context, tx *gorm.DB, req CreateSKURequest) (*types.SKU, error)
}

type skuService struct {
	db         *gorm.DB
	log        *logger.Logger
	skuRepo    repos.SKURepo
	shipToRepo repos.ShipToRepo
	entryRepo  repos.ForecastEntryRepo
}

func NewSKUService(db *gorm.DB, baseLog *logger.Logger, skuRepo repos.SKURepo, shipToRepo repos.ShipToRepo, entryRepo repos.ForecastEntryRepo) SKUService {
	return &skuService{
		db:         db,
		log:        baseLog.With("service", "SKUService"),
		skuRepo:    skuRepo,
		shipToRepo: shipToRepo,
		entryRepo:  entryRepo,
	}
}

func (s *skuService) List(ctx context.Context, tx *gorm.DB) ([]*SKUView, error) {
	skus, err := s.skuRepo.ListAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	views := make([]*SKUView, 0, len(skus))
	for _, sku := range skus {
		shipTos, err := s.shipToRepo.ListBySKU(ctx, tx, sku.ID)
		if err != nil {
			return nil, fmt.Errorf("list ship-tos for %s: %w", sku.PartNumber, err)
		}
		sku.ShipTos = shipTos
		count, err := s.entryRepo.CountBySKU(ctx, tx, sku.ID)
		if err != nil {
			return nil, fmt.Errorf("count entries for %s: %w", sku.PartNumber, err)
		}
		views = append(views, &SKUView{SKU: sku, EntryCount: count})
	}
	return views, nil
}

func (s *skuService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SKU, error) {
	return s.skuRepo.GetByID(ctx, tx, id)
}

func (s *skuService) Create(ctx context.Context, tx *gorm.DB, req CreateSKURequest) (*types.SKU, error) {
	partNumber := strings.TrimSpace(req.PartNumber)
	if partNumber == "" {
		return nil, fmt.Errorf("part number is required")
	}

	existing, err := s.skuRepo.GetByPartNumber(ctx, tx, partNumber)
	if err != nil {
		return nil, fmt.Errorf("check part number: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicatePartNumber
	}

	sku, err := s.skuRepo.Create(ctx, tx, &types.SKU{
		PartNumber: partNumber,
		PartName:   strings.TrimSpace(req.PartName),
		OrderCode:  strings.TrimSpace(req.OrderCode),
	})
	if err != nil {
		return nil, fmt.Errorf("create sku: %w", err)
	}

	codes := req.ShipTos
	if len(codes) == 0 {
		codes = []string{types.DefaultShipToCode}
	}
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		shipTo, err := s.shipToRepo.Create(ctx, tx, &types.ShipTo{SKUID: sku.ID, Code: code})
		if err != nil {
			return nil, fmt.Errorf("create ship-to %q: %w", code, err)
		}
		sku.ShipTos = append(sku.ShipTos, shipTo)
	}
	s.log.Info("Created SKU", "part_number", sku.PartNumber, "ship_tos", len(sku.ShipTos))
	return sku, nil
}
