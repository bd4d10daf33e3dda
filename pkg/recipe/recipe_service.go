package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/internal/utils"
)

type (
	RecipeService interface {
		GetRecipeRecommendations(ctx context.Context, req domain.RecipeRequest) (domain.RecipeResponse, error)
	}

	recipeService struct{}
)

func NewRecipeService() RecipeService {
	return &recipeService{}
}

// GetRecipeRecommendations asks Gemini for recipes built around the given
// pantry items. Every failure mode, from missing configuration to a
// malformed model response, falls back to the local generator so the
// recipes screen keeps working without AI.
func (s *recipeService) GetRecipeRecommendations(ctx context.Context, req domain.RecipeRequest) (domain.RecipeResponse, error) {
	if len(req.PantryItems) == 0 {
		return domain.RecipeResponse{}, domain.ErrNoIngredients
	}

	apiKey := utils.GetConfig("GEMINI_API_KEY")
	model := utils.GetConfig("GEMINI_MODEL")
	if apiKey == "" || model == "" {
		return generateLocalRecipes(req.PantryItems), nil
	}

	recipes, err := s.generateWithGemini(ctx, req.PantryItems, apiKey, model)
	if err != nil {
		log.Printf("recipe: gemini failed, falling back to local recipes: %v", err)
		return generateLocalRecipes(req.PantryItems), nil
	}

	return recipes, nil
}

func (s *recipeService) generateWithGemini(ctx context.Context, items []domain.RecipePantryItem, apiKey, model string) (domain.RecipeResponse, error) {
	var lines []string
	for _, item := range items {
		line := "- " + item.Name
		if item.Quantity != "" {
			line += fmt.Sprintf(" (qty: %s)", item.Quantity)
		}
		if item.ExpiryDate != "" {
			line += fmt.Sprintf(", expiring: %s", item.ExpiryDate)
		}
		lines = append(lines, line)
	}

	prompt := fmt.Sprintf(`You are an assistant for a food-waste tracking app called FreshTrack.
The user has the following pantry items:
%s

Using only these ingredients (plus simple staples like oil, salt, pepper, common spices),
propose 3 concise recipe ideas that help them use up items that are expiring soon.

Return the result as strict JSON with this shape:
{
  "recipes": [
    {
      "id": "string-unique-id",
      "title": "Recipe name",
      "ingredients": ["list", "of", "ingredient names"],
      "instructions": "Short paragraph with clear steps."
    }
  ]
}
Do NOT include any extra text outside of the JSON. Do not use backticks.`, strings.Join(lines, "\n"))

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", model, apiKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.4,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	httpReq, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.RecipeResponse{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return domain.RecipeResponse{}, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return domain.RecipeResponse{}, fmt.Errorf("gemini returned no candidates")
	}

	responseText := cleanModelJSON(geminiResp.Candidates[0].Content.Parts[0].Text)

	var parsed struct {
		Recipes []struct {
			ID           string   `json:"id"`
			Title        string   `json:"title"`
			Ingredients  []string `json:"ingredients"`
			Instructions string   `json:"instructions"`
		} `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		return domain.RecipeResponse{}, fmt.Errorf("failed to parse gemini response: %v - raw response: %s", err, responseText)
	}

	recipes := make([]domain.Recipe, 0, len(parsed.Recipes))
	for idx, r := range parsed.Recipes {
		if r.ID == "" {
			r.ID = fmt.Sprintf("ai-%d", idx+1)
		}
		if r.Title == "" {
			r.Title = "Untitled recipe"
		}
		if r.Ingredients == nil {
			r.Ingredients = []string{}
		}
		recipes = append(recipes, domain.Recipe{
			ID:           r.ID,
			Title:        r.Title,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
		})
	}

	if len(recipes) == 0 {
		return domain.RecipeResponse{}, fmt.Errorf("no valid recipes in gemini response")
	}

	return domain.RecipeResponse{Recipes: recipes}, nil
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

func cleanModelJSON(text string) string {
	if match := jsonObjectPattern.FindString(text); match != "" {
		text = match
	}

	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}

	return strings.TrimSpace(text)
}

// generateLocalRecipes builds recipe ideas from item names alone, used
// whenever Gemini is unconfigured or unavailable.
func generateLocalRecipes(items []domain.RecipePantryItem) domain.RecipeResponse {
	seen := make(map[string]bool)
	var names []string
	for _, item := range items {
		if item.Name == "" || seen[item.Name] {
			continue
		}
		seen[item.Name] = true
		names = append(names, item.Name)
	}

	if len(names) == 0 {
		names = []string{"Pantry Mix"}
	}

	var recipes []domain.Recipe

	main := titleCase(names[0])
	recipes = append(recipes, domain.Recipe{
		ID:          "local-1",
		Title:       fmt.Sprintf("Easy %s Bowl", main),
		Ingredients: append(firstN(names, 3), "olive oil", "salt", "pepper"),
		Instructions: fmt.Sprintf(
			"Chop your %s. Sauté in a pan with olive oil, salt, and pepper until tender. Serve warm as a simple bowl or side dish.",
			strings.Join(firstN(names, 3), ", "),
		),
	})

	if len(names) >= 2 {
		second := titleCase(names[1])
		recipes = append(recipes, domain.Recipe{
			ID:          "local-2",
			Title:       fmt.Sprintf("%s & %s Skillet", main, second),
			Ingredients: append(firstN(names, 4), "garlic", "onion"),
			Instructions: fmt.Sprintf(
				"Slice %s and %s thinly. Cook with garlic and onion in a skillet until fragrant. Add remaining veggies, season to taste, and cook until done.",
				names[0], names[1],
			),
		})
	}

	if len(names) >= 3 {
		recipes = append(recipes, domain.Recipe{
			ID:          "local-3",
			Title:       "Pantry Sheet-Pan Roast",
			Ingredients: append(firstN(names, 5), "olive oil", "mixed herbs"),
			Instructions: "Preheat oven to 200°C. Cut all veggies into similar-sized pieces. " +
				"Toss with olive oil, salt, pepper, and mixed herbs. " +
				"Roast on a tray for 20-30 minutes until golden and cooked through.",
		})
	}

	return domain.RecipeResponse{Recipes: recipes}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func firstN(values []string, n int) []string {
	if len(values) < n {
		n = len(values)
	}
	out := make([]string, n)
	copy(out, values[:n])
	return out
}
