package types

import (
	"time"

	"github.com/google/uuid"
)

// SKU is a manufactured part identity. PartNumber is the business key; a
// SKU is created explicitly or lazily when an ingest row names an unknown
// part number, and is never deleted by the core.
type SKU struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PartNumber string    `gorm:"column:part_number;not null;uniqueIndex" json:"part_number"`
	PartName   string    `gorm:"column:part_name;not null" json:"part_name"`
	OrderCode  string    `gorm:"column:order_code;not null" json:"order"`

	ShipTos []*ShipTo `gorm:"constraint:OnDelete:CASCADE;foreignKey:SKUID;references:ID" json:"ship_tos,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (SKU) TableName() string { return "sku" }
