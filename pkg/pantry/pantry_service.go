package pantry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/entities"
	"freshtrack-backend/internal/utils/storage"
	"freshtrack-backend/pkg/waste"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PantryService interface {
		AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest) (domain.PantryItemResponse, error)
		UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest) (domain.PantryItemResponse, error)
		DeletePantryItem(ctx context.Context, id string) (domain.WasteEventResponse, error)
		GetPantryItems(ctx context.Context) ([]domain.PantryItemResponse, error)
		UploadItemImage(ctx context.Context, id string, req domain.UploadItemImageRequest) (domain.PantryItemResponse, error)
	}

	pantryService struct {
		pantryRepository PantryRepository
		s3               storage.AwsS3
	}
)

func NewPantryService(pantryRepository PantryRepository, s3 storage.AwsS3) PantryService {
	return &pantryService{
		pantryRepository: pantryRepository,
		s3:               s3,
	}
}

func (s *pantryService) AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest) (domain.PantryItemResponse, error) {
	// Status is always derived server-side; whatever the client thinks the
	// status is never gets stored.
	item := &entities.PantryItem{
		ID:         uuid.New(),
		Name:       req.Name,
		Quantity:   req.Quantity,
		ExpiryDate: req.ExpiryDate,
		Emoji:      req.Emoji,
		Status:     ClassifyExpiry(req.ExpiryDate),
		Value:      req.Value,
		Category:   req.Category,
	}

	if err := s.pantryRepository.AddPantryItem(ctx, item); err != nil {
		return domain.PantryItemResponse{}, err
	}

	return toPantryItemResponse(item), nil
}

func (s *pantryService) UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest) (domain.PantryItemResponse, error) {
	item, err := s.pantryRepository.GetPantryItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PantryItemResponse{}, domain.ErrPantryItemNotFound
		}
		return domain.PantryItemResponse{}, err
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Quantity != "" {
		item.Quantity = req.Quantity
	}
	if req.Emoji != "" {
		item.Emoji = req.Emoji
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Value != nil {
		item.Value = req.Value
	}
	if req.ExpiryDate != "" {
		item.ExpiryDate = req.ExpiryDate
	}

	// Reclassify even when the date did not change: time may have moved the
	// item across a status boundary since the last read.
	item.Status = ClassifyExpiry(item.ExpiryDate)

	if err := s.pantryRepository.UpdatePantryItem(ctx, item); err != nil {
		return domain.PantryItemResponse{}, err
	}

	return toPantryItemResponse(item), nil
}

// DeletePantryItem removes the item and records its disposition. The item's
// status is reclassified one last time from the raw expiry string, so a
// stale persisted status cannot change the eaten/spoiled outcome. Delete and
// event insert commit atomically in the repository.
func (s *pantryService) DeletePantryItem(ctx context.Context, id string) (domain.WasteEventResponse, error) {
	item, err := s.pantryRepository.GetPantryItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.WasteEventResponse{}, domain.ErrPantryItemNotFound
		}
		return domain.WasteEventResponse{}, err
	}

	status := ClassifyExpiry(item.ExpiryDate)

	event := &entities.WasteEvent{
		ID:        uuid.New(),
		ItemName:  item.Name,
		Status:    waste.DispositionOutcome(status),
		DeletedAt: time.Now().UTC().Truncate(time.Second),
		Value:     item.Value,
		Category:  waste.NormalizeCategory(item.Category),
	}

	if err := s.pantryRepository.DeleteAndRecordWasteEvent(ctx, id, event); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.WasteEventResponse{}, domain.ErrPantryItemNotFound
		}
		return domain.WasteEventResponse{}, err
	}

	return domain.WasteEventResponse{
		ID:        event.ID.String(),
		ItemName:  event.ItemName,
		Status:    event.Status,
		DeletedAt: event.DeletedAt,
		Value:     event.Value,
		Category:  event.Category,
	}, nil
}

// GetPantryItems lists items with their status recomputed from the raw
// expiry date. Drifted statuses are written back as one batch; the listing
// itself succeeds even when the write-back fails, since the derived status
// is authoritative on every read anyway.
func (s *pantryService) GetPantryItems(ctx context.Context) ([]domain.PantryItemResponse, error) {
	items, err := s.pantryRepository.GetPantryItems(ctx)
	if err != nil {
		return nil, err
	}

	updates := Reclassify(items, time.Now().UTC())
	if len(updates) > 0 {
		if err := s.pantryRepository.ApplyStatusUpdates(ctx, updates); err != nil {
			log.Printf("pantry: status write-back failed: %v", err)
		}
	}

	response := make([]domain.PantryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toPantryItemResponse(item))
	}

	return response, nil
}

func (s *pantryService) UploadItemImage(ctx context.Context, id string, req domain.UploadItemImageRequest) (domain.PantryItemResponse, error) {
	item, err := s.pantryRepository.GetPantryItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PantryItemResponse{}, domain.ErrPantryItemNotFound
		}
		return domain.PantryItemResponse{}, err
	}

	fileName := fmt.Sprintf("pantry-item-%s", item.ID.String())

	var objectKey string
	if item.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(item.ImageURL)
		if existingKey != "" {
			objectKey, err = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, err = s.s3.UploadFile(fileName, req.Image, "pantry-items", storage.AllowImage...)
		}
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Image, "pantry-items", storage.AllowImage...)
	}
	if err != nil {
		return domain.PantryItemResponse{}, err
	}

	item.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	item.Status = ClassifyExpiry(item.ExpiryDate)

	if err := s.pantryRepository.UpdatePantryItem(ctx, item); err != nil {
		return domain.PantryItemResponse{}, err
	}

	return toPantryItemResponse(item), nil
}

func toPantryItemResponse(item *entities.PantryItem) domain.PantryItemResponse {
	return domain.PantryItemResponse{
		ID:         item.ID.String(),
		Name:       item.Name,
		Quantity:   item.Quantity,
		ExpiryDate: item.ExpiryDate,
		Emoji:      item.Emoji,
		Status:     item.Status,
		Value:      item.Value,
		Category:   item.Category,
		ImageURL:   item.ImageURL,
		CreatedAt:  item.CreatedAt,
	}
}
