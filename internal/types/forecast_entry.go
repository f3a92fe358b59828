package types

import (
	"time"

	"github.com/google/uuid"
)

// ForecastEntry is one observation. OrderMonth is the snapshot ("as-of")
// month; the target month the value predicts lives on the owning
// ForecastVersion. Re-ingesting the same (version, sku, ship-to, snapshot)
// coordinate overwrites Value rather than duplicating.
type ForecastEntry struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ForecastVersionID uuid.UUID `gorm:"column:forecast_version_id;type:uuid;not null;index:idx_entry_coord,unique,priority:1" json:"forecast_version_id"`
	SKUID             uuid.UUID `gorm:"column:sku_id;type:uuid;not null;index:idx_entry_coord,unique,priority:2;index" json:"sku_id"`
	ShipToID          uuid.UUID `gorm:"column:ship_to_id;type:uuid;not null;index:idx_entry_coord,unique,priority:3" json:"ship_to_id"`
	OrderMonth        time.Time `gorm:"column:order_month;not null;index:idx_entry_coord,unique,priority:4" json:"order_month"`
	Value             int64     `gorm:"column:value;not null" json:"value"`

	ForecastVersion *ForecastVersion `gorm:"foreignKey:ForecastVersionID;references:ID" json:"forecast_version,omitempty"`
	SKU             *SKU             `gorm:"foreignKey:SKUID;references:ID" json:"sku,omitempty"`
	ShipTo          *ShipTo          `gorm:"foreignKey:ShipToID;references:ID" json:"ship_to,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ForecastEntry) TableName() string { return "forecast_entry" }
