package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stairforecast/backend/internal/types"
)

func SeedSKU(tb testing.TB, ctx context.Context, tx *gorm.DB, partNumber string) *types.SKU {
	tb.Helper()
	sku := &types.SKU{
		ID:         uuid.New(),
		PartNumber: partNumber,
		PartName:   "FINISH GOOD",
		OrderCode:  "ORDER001",
	}
	if err := tx.WithContext(ctx).Create(sku).Error; err != nil {
		tb.Fatalf("seed sku: %v", err)
	}
	return sku
}

func SeedShipTo(tb testing.TB, ctx context.Context, tx *gorm.DB, skuID uuid.UUID, code string) *types.ShipTo {
	tb.Helper()
	shipTo := &types.ShipTo{
		ID:    uuid.New(),
		SKUID: skuID,
		Code:  code,
	}
	if err := tx.WithContext(ctx).Create(shipTo).Error; err != nil {
		tb.Fatalf("seed ship-to: %v", err)
	}
	return shipTo
}

func SeedVersion(tb testing.TB, ctx context.Context, tx *gorm.DB, month time.Time, version int) *types.ForecastVersion {
	tb.Helper()
	fv := &types.ForecastVersion{
		ID:      uuid.New(),
		Month:   month.UTC(),
		Version: version,
	}
	if err := tx.WithContext(ctx).Create(fv).Error; err != nil {
		tb.Fatalf("seed forecast version: %v", err)
	}
	return fv
}

func SeedEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, versionID, skuID, shipToID uuid.UUID, orderMonth time.Time, value int64) *types.ForecastEntry {
	tb.Helper()
	entry := &types.ForecastEntry{
		ID:                uuid.New(),
		ForecastVersionID: versionID,
		SKUID:             skuID,
		ShipToID:          shipToID,
		OrderMonth:        orderMonth.UTC(),
		Value:             value,
	}
	if err := tx.WithContext(ctx).Create(entry).Error; err != nil {
		tb.Fatalf("seed forecast entry: %v", err)
	}
	return entry
}

func MonthUTC(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}
