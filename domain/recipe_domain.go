package domain

import "errors"

var (
	MessageSuccessGetRecipes = "recipe recommendations retrieved successfully"
	MessageFailedGetRecipes  = "failed to retrieve recipe recommendations"

	ErrNoIngredients = errors.New("pantry_items cannot be empty")
)

type (
	RecipePantryItem struct {
		Name       string `json:"name" validate:"required"`
		Quantity   string `json:"quantity" validate:"omitempty"`
		ExpiryDate string `json:"expiry_date" validate:"omitempty"`
	}

	RecipeRequest struct {
		PantryItems []RecipePantryItem `json:"pantry_items" validate:"required,min=1,dive"`
	}

	Recipe struct {
		ID           string   `json:"id"`
		Title        string   `json:"title"`
		Ingredients  []string `json:"ingredients"`
		Instructions string   `json:"instructions"`
	}

	RecipeResponse struct {
		Recipes []Recipe `json:"recipes"`
	}
)
