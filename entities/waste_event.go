package entities

import (
	"time"

	"github.com/google/uuid"
)

// WasteEvent is append-only: rows are written once at item deletion and never
// updated or removed. All waste statistics are derived from this log.
type WasteEvent struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ItemName string    `json:"item_name"`
	Status   string    `json:"status"` // "eaten", "spoiled"
	// DeletedAt is a plain timestamp, not a gorm soft-delete marker.
	DeletedAt time.Time `gorm:"not null" json:"deleted_at"`
	Value     *float64  `json:"value,omitempty"`
	Category  string    `json:"category"`

	Timestamp
}
