package domain

import "errors"

var (
	MessageSuccessAnalyzeFreshness = "freshness analyzed successfully"
	MessageSuccessRecognizeFood    = "food item recognized successfully"

	MessageFailedAnalyzeFreshness = "failed to analyze freshness"
	MessageFailedRecognizeFood    = "failed to recognize food item"

	ErrEmptyImage   = errors.New("empty image file")
	ErrFileNotImage = errors.New("file must be an image")
)

type (
	FreshnessResponse struct {
		FreshnessScore  float64            `json:"freshness_score"`
		FreshnessLabel  string             `json:"freshness_label"` // "Very Fresh", "Fresh", "Expiring Soon", "Spoiled"
		Confidence      float64            `json:"confidence"`
		AnalysisDetails map[string]interface{} `json:"analysis_details"`
	}

	FoodRecognitionResponse struct {
		Name                string   `json:"name"`
		Confidence          float64  `json:"confidence"`
		Suggestions         []string `json:"suggestions"`
		EstimatedExpiryDays *int     `json:"estimated_expiry_days"`
	}
)
