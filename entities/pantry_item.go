package entities

import (
	"github.com/google/uuid"
)

// PantryItem keeps expiry_date as the raw text the client sent. Status is
// derived from it on every read and only cached here.
type PantryItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Quantity   string    `json:"quantity,omitempty"`
	ExpiryDate string    `json:"expiry_date,omitempty"`
	Emoji      string    `json:"emoji,omitempty"`
	Status     string    `json:"status"` // "fresh", "expiring", "expired"
	Value      *float64  `json:"value,omitempty"`
	Category   string    `json:"category,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`

	Timestamp
}
