package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UploadBatch is the persisted report of one bulk CSV ingest: creation
// counters, the number of cell upserts (a re-upload overwrites rather than
// creates), and the accumulated row-level errors, so partial success stays
// legible after the fact.
type UploadBatch struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Filename       string         `gorm:"column:filename;not null" json:"filename"`
	DefaultVersion int            `gorm:"column:default_version;not null" json:"default_version"`
	SKUsCreated    int            `gorm:"column:skus_created;not null;default:0" json:"skus_created"`
	ShipTosCreated int            `gorm:"column:ship_tos_created;not null;default:0" json:"ship_tos_created"`
	EntriesUpserted int            `gorm:"column:entries_upserted;not null;default:0" json:"entries_upserted"`
	RowErrors      datatypes.JSON `gorm:"column:row_errors;type:jsonb" json:"row_errors"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (UploadBatch) TableName() string { return "upload_batch" }
