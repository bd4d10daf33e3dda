package waste

import (
	"context"

	"freshtrack-backend/entities"

	"gorm.io/gorm"
)

type (
	// WasteRepository is append-and-read only. The event log is immutable:
	// no update or delete is exposed on purpose.
	WasteRepository interface {
		GetAllWasteEvents(ctx context.Context) ([]*entities.WasteEvent, error)
	}

	wasteRepository struct {
		db *gorm.DB
	}
)

func NewWasteRepository(db *gorm.DB) WasteRepository {
	return &wasteRepository{db: db}
}

func (r *wasteRepository) GetAllWasteEvents(ctx context.Context) ([]*entities.WasteEvent, error) {
	var events []*entities.WasteEvent

	// Insertion order, so category tie-breaking stays stable across reads.
	if err := r.db.WithContext(ctx).
		Order("deleted_at asc, created_at asc").
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
