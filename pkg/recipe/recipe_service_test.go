package recipe

import (
	"context"
	"testing"

	"freshtrack-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRecipeRecommendationsRejectsEmptyPantry(t *testing.T) {
	service := NewRecipeService()

	_, err := service.GetRecipeRecommendations(context.Background(), domain.RecipeRequest{})
	assert.ErrorIs(t, err, domain.ErrNoIngredients)
}

func TestGetRecipeRecommendationsLocalFallback(t *testing.T) {
	// No Gemini configuration: the local generator answers.
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	service := NewRecipeService()

	res, err := service.GetRecipeRecommendations(context.Background(), domain.RecipeRequest{
		PantryItems: []domain.RecipePantryItem{
			{Name: "tomato"},
			{Name: "spinach"},
			{Name: "cheese"},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Recipes, 3)
	assert.Equal(t, "local-1", res.Recipes[0].ID)
	assert.Equal(t, "Easy Tomato Bowl", res.Recipes[0].Title)
}

func TestGenerateLocalRecipesScalesWithItemCount(t *testing.T) {
	one := generateLocalRecipes([]domain.RecipePantryItem{{Name: "carrot"}})
	require.Len(t, one.Recipes, 1)
	assert.Equal(t, "Easy Carrot Bowl", one.Recipes[0].Title)
	assert.Contains(t, one.Recipes[0].Ingredients, "carrot")
	assert.Contains(t, one.Recipes[0].Ingredients, "olive oil")

	two := generateLocalRecipes([]domain.RecipePantryItem{
		{Name: "carrot"}, {Name: "potato"},
	})
	require.Len(t, two.Recipes, 2)
	assert.Equal(t, "Carrot & Potato Skillet", two.Recipes[1].Title)

	three := generateLocalRecipes([]domain.RecipePantryItem{
		{Name: "carrot"}, {Name: "potato"}, {Name: "leek"},
	})
	require.Len(t, three.Recipes, 3)
	assert.Equal(t, "Pantry Sheet-Pan Roast", three.Recipes[2].Title)
}

func TestGenerateLocalRecipesDeduplicatesNames(t *testing.T) {
	res := generateLocalRecipes([]domain.RecipePantryItem{
		{Name: "carrot"}, {Name: "carrot"}, {Name: ""},
	})
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, []string{"carrot", "olive oil", "salt", "pepper"}, res.Recipes[0].Ingredients)
}

func TestGenerateLocalRecipesNamelessItems(t *testing.T) {
	res := generateLocalRecipes([]domain.RecipePantryItem{{Name: ""}})
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Easy Pantry Mix Bowl", res.Recipes[0].Title)
}

func TestCleanModelJSON(t *testing.T) {
	raw := "```json\n{\"recipes\":[]}\n```"
	assert.Equal(t, `{"recipes":[]}`, cleanModelJSON(raw))

	prose := `Here you go: {"recipes":[]} enjoy!`
	assert.Equal(t, `{"recipes":[]}`, cleanModelJSON(prose))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Red Bell Pepper", titleCase("red BELL pepper"))
	assert.Equal(t, "Tomato", titleCase("tomato"))
}
