package types

import (
	"time"

	"github.com/google/uuid"
)

// ForecastVersion is a named revision snapshot for one target month. The
// (month, version) pair is unique; version numbers carry no contiguity
// requirement. Created lazily on first ingest of the pair.
type ForecastVersion struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Month   time.Time `gorm:"column:month;not null;index:idx_month_version,unique,priority:1" json:"month"`
	Version int       `gorm:"column:version;not null;index:idx_month_version,unique,priority:2" json:"version"`

	Entries []*ForecastEntry `gorm:"constraint:OnDelete:CASCADE;foreignKey:ForecastVersionID;references:ID" json:"entries,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ForecastVersion) TableName() string { return "forecast_version" }
