package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultShipToCode is the sentinel destination for ingest rows that do not
// name one.
const DefaultShipToCode = "DEFAULT"

// ShipTo is a named delivery destination scoped to exactly one SKU. Code is
// unique within the SKU.
type ShipTo struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SKUID uuid.UUID `gorm:"column:sku_id;type:uuid;not null;index:idx_sku_ship_to,unique,priority:1" json:"sku_id"`
	Code  string    `gorm:"column:code;not null;index:idx_sku_ship_to,unique,priority:2" json:"code"`
	Name  *string   `gorm:"column:name" json:"name,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ShipTo) TableName() string { return "ship_to" }
