package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddPantryItem    = "pantry item added successfully"
	MessageSuccessUpdatePantryItem = "pantry item updated successfully"
	MessageSuccessDeletePantryItem = "pantry item deleted successfully"
	MessageSuccessGetPantryItems   = "pantry items retrieved successfully"
	MessageSuccessUploadItemImage  = "item image uploaded successfully"

	MessageFailedAddPantryItem    = "failed to add pantry item"
	MessageFailedUpdatePantryItem = "failed to update pantry item"
	MessageFailedDeletePantryItem = "failed to delete pantry item"
	MessageFailedGetPantryItems   = "failed to retrieve pantry items"
	MessageFailedUploadItemImage  = "failed to upload item image"

	ErrPantryItemNotFound = errors.New("pantry item not found")
	ErrInvalidImageFormat = errors.New("invalid image format")
)

type (
	AddPantryItemRequest struct {
		Name       string   `json:"name" validate:"required"`
		Quantity   string   `json:"quantity" validate:"omitempty"`
		ExpiryDate string   `json:"expiry_date" validate:"omitempty"`
		Emoji      string   `json:"emoji" validate:"omitempty"`
		Value      *float64 `json:"value" validate:"omitempty,gte=0"`
		Category   string   `json:"category" validate:"omitempty"`
	}

	UpdatePantryItemRequest struct {
		Name       string   `json:"name" validate:"omitempty"`
		Quantity   string   `json:"quantity" validate:"omitempty"`
		ExpiryDate string   `json:"expiry_date" validate:"omitempty"`
		Emoji      string   `json:"emoji" validate:"omitempty"`
		Value      *float64 `json:"value" validate:"omitempty,gte=0"`
		Category   string   `json:"category" validate:"omitempty"`
	}

	UploadItemImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	PantryItemResponse struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Quantity   string    `json:"quantity,omitempty"`
		ExpiryDate string    `json:"expiry_date,omitempty"`
		Emoji      string    `json:"emoji,omitempty"`
		Status     string    `json:"status"`
		Value      *float64  `json:"value,omitempty"`
		Category   string    `json:"category,omitempty"`
		ImageURL   string    `json:"image_url,omitempty"`
		CreatedAt  time.Time `json:"created_at"`
	}

	WasteEventResponse struct {
		ID        string    `json:"id"`
		ItemName  string    `json:"item_name"`
		Status    string    `json:"status"`
		DeletedAt time.Time `json:"deleted_at"`
		Value     *float64  `json:"value,omitempty"`
		Category  string    `json:"category"`
	}
)
