package pantry

import (
	"context"

	"freshtrack-backend/entities"

	"gorm.io/gorm"
)

type (
	PantryRepository interface {
		AddPantryItem(ctx context.Context, item *entities.PantryItem) error
		GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error)
		GetPantryItems(ctx context.Context) ([]*entities.PantryItem, error)
		UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error
		ApplyStatusUpdates(ctx context.Context, updates []StatusUpdate) error
		DeleteAndRecordWasteEvent(ctx context.Context, id string, event *entities.WasteEvent) error
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) AddPantryItem(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *pantryRepository) GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error) {
	var item entities.PantryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pantryRepository) GetPantryItems(ctx context.Context) ([]*entities.PantryItem, error) {
	var items []*entities.PantryItem

	if err := r.db.WithContext(ctx).
		Order("expiry_date asc, name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *pantryRepository) UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// ApplyStatusUpdates persists recomputed statuses as one batch. An update
// that matches no row (item deleted since the read) is silently skipped, so
// the write-back can never race a concurrent deletion into an error.
func (r *pantryRepository) ApplyStatusUpdates(ctx context.Context, updates []StatusUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			if err := tx.Model(&entities.PantryItem{}).
				Where("id = ?", update.ID).
				Update("status", update.Status).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteAndRecordWasteEvent removes the item and appends its waste event in
// the same transaction. Either both happen or neither does; deleting a row
// that no longer exists rolls back with gorm.ErrRecordNotFound.
func (r *pantryRepository) DeleteAndRecordWasteEvent(ctx context.Context, id string, event *entities.WasteEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&entities.PantryItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(event).Error
	})
}
