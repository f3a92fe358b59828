package repos

import (
	"context"
	"testing"
	"time"

	"github.com/stairforecast/backend/internal/repos/testutil"
	"github.com/stairforecast/backend/internal/types"
)

func TestForecastEntryRepoUpsertOverwrites(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewForecastEntryRepo(db, testutil.Logger(t))

	sku := testutil.SeedSKU(t, ctx, tx, "001234")
	shipTo := testutil.SeedShipTo(t, ctx, tx, sku.ID, "DEFAULT")
	jul := testutil.MonthUTC(2024, time.July)
	version := testutil.SeedVersion(t, ctx, tx, jul, 10)

	if _, err := repo.Upsert(ctx, tx, &types.ForecastEntry{
		ForecastVersionID: version.ID,
		SKUID:             sku.ID,
		ShipToID:          shipTo.ID,
		OrderMonth:        jul,
		Value:             3800,
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Same coordinate, new value: must overwrite, not duplicate.
	if _, err := repo.Upsert(ctx, tx, &types.ForecastEntry{
		ForecastVersionID: version.ID,
		SKUID:             sku.ID,
		ShipToID:          shipTo.ID,
		OrderMonth:        jul,
		Value:             4100,
	}); err != nil {
		t.Fatalf("Upsert overwrite: %v", err)
	}

	var rows []*types.ForecastEntry
	if err := tx.WithContext(ctx).
		Where("forecast_version_id = ?", version.ID).
		Find(&rows).Error; err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("entries=%d, want 1", len(rows))
	}
	if rows[0].Value != 4100 {
		t.Fatalf("value=%d, want overwritten 4100", rows[0].Value)
	}

	n, err := repo.CountBySKU(ctx, tx, sku.ID)
	if err != nil || n != 1 {
		t.Fatalf("CountBySKU=%d err=%v, want 1", n, err)
	}
}
