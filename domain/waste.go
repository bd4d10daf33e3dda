package domain

var (
	MessageSuccessGetWasteStats = "waste statistics retrieved successfully"
	MessageFailedGetWasteStats  = "failed to retrieve waste statistics"
)

type (
	// WastePoint is one calendar day in the 7-day trend window.
	WastePoint struct {
		Label string `json:"label"`
		Value int    `json:"value"`
	}

	WasteSummary struct {
		Total string `json:"total"`
		Delta string `json:"delta"`
		// Monetary totals in whatever currency the client uses.
		SavedValue           float64 `json:"saved_value"`
		WastedValue          float64 `json:"wasted_value"`
		SavedValueFormatted  string  `json:"saved_value_formatted"`
		WastedValueFormatted string  `json:"wasted_value_formatted"`
	}

	CategoryWaste struct {
		Category    string  `json:"category"`
		WastedCount int     `json:"wasted_count"`
		SavedCount  int     `json:"saved_count"`
		WastedValue float64 `json:"wasted_value"`
		SavedValue  float64 `json:"saved_value"`
	}

	WasteStatsResponse struct {
		Trend   []WastePoint `json:"trend"`
		Summary WasteSummary `json:"summary"`
	}

	EnhancedWasteStatsResponse struct {
		Trend             []WastePoint    `json:"trend"`
		Summary           WasteSummary    `json:"summary"`
		CategoryBreakdown []CategoryWaste `json:"category_breakdown"`
	}
)
