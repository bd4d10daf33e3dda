package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/internal/utils"
)

type (
	VisionService interface {
		AnalyzeFreshness(ctx context.Context, imageFile *multipart.FileHeader) (domain.FreshnessResponse, error)
		RecognizeFood(ctx context.Context, imageFile *multipart.FileHeader) (domain.FoodRecognitionResponse, error)
	}

	visionService struct {
		extractor SignalExtractor
	}
)

// NewVisionService accepts a nil extractor: freshness analysis then degrades
// to a fixed neutral estimate instead of failing callers.
func NewVisionService(extractor SignalExtractor) VisionService {
	return &visionService{extractor: extractor}
}

func (s *visionService) AnalyzeFreshness(ctx context.Context, imageFile *multipart.FileHeader) (domain.FreshnessResponse, error) {
	imageBytes, err := readImageFile(imageFile)
	if err != nil {
		return domain.FreshnessResponse{}, err
	}

	if s.extractor == nil {
		// Extraction collaborator absent: neutral estimate, mid confidence.
		return domain.FreshnessResponse{
			FreshnessScore: 75.0,
			FreshnessLabel: LabelFresh,
			Confidence:     0.5,
			AnalysisDetails: map[string]interface{}{
				"error": "signal extraction not available, using default estimate",
			},
		}, nil
	}

	signals, err := s.extractor.ExtractSignals(imageBytes)
	if err != nil {
		// Extraction failed on this image: conservative estimate, low
		// confidence. Distinct from the collaborator-absent fallback above.
		log.Printf("vision: freshness analysis failed: %v", err)
		return domain.FreshnessResponse{
			FreshnessScore: 50.0,
			FreshnessLabel: LabelFresh,
			Confidence:     0.3,
			AnalysisDetails: map[string]interface{}{
				"error": err.Error(),
			},
		}, nil
	}

	return ScoreFreshness(signals), nil
}

func (s *visionService) RecognizeFood(ctx context.Context, imageFile *multipart.FileHeader) (domain.FoodRecognitionResponse, error) {
	imageBytes, err := readImageFile(imageFile)
	if err != nil {
		return domain.FoodRecognitionResponse{}, err
	}

	apiKey := utils.GetConfig("GEMINI_API_KEY")
	model := utils.GetConfig("GEMINI_MODEL")
	if apiKey == "" || model == "" {
		// Recognition is optional: without Gemini return a generic answer.
		return domain.FoodRecognitionResponse{
			Name:        "Food Item",
			Confidence:  0.3,
			Suggestions: []string{"Vegetable", "Fruit", "Dairy", "Meat", "Grain"},
		}, nil
	}

	recognition, err := s.recognizeWithGemini(ctx, imageBytes, mimeTypeOf(imageFile), apiKey, model)
	if err != nil {
		log.Printf("vision: gemini recognition failed, using fallback: %v", err)
		return domain.FoodRecognitionResponse{
			Name:        "Food Item",
			Confidence:  0.3,
			Suggestions: []string{},
		}, nil
	}

	return recognition, nil
}

func (s *visionService) recognizeWithGemini(ctx context.Context, imageBytes []byte, mimeType, apiKey, model string) (domain.FoodRecognitionResponse, error) {
	base64Image := base64.StdEncoding.EncodeToString(imageBytes)

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", model, apiKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": "Look at this image of a food item and identify what it is. Return ONLY a JSON object with exactly these fields: 'name' (a specific common food name like 'Tomato' or 'Milk'), 'confidence' (number between 0 and 1), 'suggestions' (array of alternative name strings), and 'estimated_expiry_days' (number of days this food typically lasts, or null if unknown). Do not include any other text.",
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64Image,
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return domain.FoodRecognitionResponse{}, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return domain.FoodRecognitionResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return domain.FoodRecognitionResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.FoodRecognitionResponse{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
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
		return domain.FoodRecognitionResponse{}, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return domain.FoodRecognitionResponse{}, fmt.Errorf("gemini returned no candidates")
	}

	responseText := extractJSONObject(geminiResp.Candidates[0].Content.Parts[0].Text)

	var recognition struct {
		Name                string   `json:"name"`
		Confidence          float64  `json:"confidence"`
		Suggestions         []string `json:"suggestions"`
		EstimatedExpiryDays *int     `json:"estimated_expiry_days"`
	}
	if err := json.Unmarshal([]byte(responseText), &recognition); err != nil {
		return domain.FoodRecognitionResponse{}, fmt.Errorf("failed to parse gemini response: %v - raw response: %s", err, responseText)
	}

	if recognition.Name == "" {
		recognition.Name = "Food Item"
	}
	if recognition.Confidence < 0 || recognition.Confidence > 1 {
		recognition.Confidence = 0.5
	}
	if recognition.Suggestions == nil {
		recognition.Suggestions = []string{}
	}

	return domain.FoodRecognitionResponse{
		Name:                recognition.Name,
		Confidence:          recognition.Confidence,
		Suggestions:         recognition.Suggestions,
		EstimatedExpiryDays: recognition.EstimatedExpiryDays,
	}, nil
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSONObject strips markdown fences and any surrounding prose from a
// model response, leaving the outermost JSON object.
func extractJSONObject(text string) string {
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

func readImageFile(imageFile *multipart.FileHeader) ([]byte, error) {
	file, err := imageFile.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(imageBytes) == 0 {
		return nil, domain.ErrEmptyImage
	}

	return imageBytes, nil
}

func mimeTypeOf(imageFile *multipart.FileHeader) string {
	if mimeType := imageFile.Header.Get("Content-Type"); mimeType != "" {
		return mimeType
	}

	switch strings.ToLower(filepath.Ext(imageFile.Filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
