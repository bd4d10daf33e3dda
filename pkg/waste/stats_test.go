package waste

import (
	"testing"
	"time"

	"freshtrack-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statsNow is a Sunday, so the trend window runs Mon..Sun.
var statsNow = time.Date(2025, time.June, 15, 18, 45, 0, 0, time.UTC)

func eventOn(day time.Time, status, category string, value *float64) *entities.WasteEvent {
	return &entities.WasteEvent{
		ID:        uuid.New(),
		ItemName:  "item",
		Status:    status,
		DeletedAt: day,
		Value:     value,
		Category:  category,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, statsNow)

	require.Len(t, stats.Trend, 7)
	assert.Equal(t, "Mon", stats.Trend[0].Label)
	assert.Equal(t, "Sun", stats.Trend[6].Label)
	for _, point := range stats.Trend {
		assert.Equal(t, 0, point.Value)
	}

	assert.Equal(t, "0 items", stats.Summary.Total)
	assert.Equal(t, "0%", stats.Summary.Delta)
	assert.Equal(t, "0.00", stats.Summary.SavedValueFormatted)
	assert.Equal(t, "0.00", stats.Summary.WastedValueFormatted)
	assert.Empty(t, stats.CategoryBreakdown)
}

func TestComputeStatsTrendAndTotals(t *testing.T) {
	events := []*entities.WasteEvent{
		// Two events today, one three days ago.
		eventOn(statsNow, OutcomeEaten, "Dairy", floatPtr(3)),
		eventOn(statsNow.Add(-2*time.Hour), OutcomeSpoiled, "Dairy", floatPtr(5)),
		eventOn(statsNow.AddDate(0, 0, -3), OutcomeSpoiled, "Produce", nil),
		// Previous week, counted only in the delta baseline.
		eventOn(statsNow.AddDate(0, 0, -9), OutcomeEaten, "Produce", floatPtr(2)),
		// Far outside the 14-day window, still in the all-time totals.
		eventOn(statsNow.AddDate(0, 0, -60), OutcomeSpoiled, "Bakery", floatPtr(1.5)),
	}

	stats := ComputeStats(events, statsNow)

	require.Len(t, stats.Trend, 7)
	assert.Equal(t, 2, stats.Trend[6].Value, "Sunday counts both of today's events")
	assert.Equal(t, 1, stats.Trend[3].Value, "Thursday counts the event three days back")
	assert.Equal(t, 0, stats.Trend[0].Value)

	assert.Equal(t, "5 items", stats.Summary.Total)
	// last7=3 vs prev7=1: +200%.
	assert.Equal(t, "+200%", stats.Summary.Delta)
	assert.Equal(t, 5.0, stats.Summary.SavedValue)
	assert.Equal(t, 6.5, stats.Summary.WastedValue)
}

func TestComputeStatsSingleItemPluralization(t *testing.T) {
	events := []*entities.WasteEvent{
		eventOn(statsNow, OutcomeEaten, "", nil),
	}

	stats := ComputeStats(events, statsNow)
	assert.Equal(t, "1 item", stats.Summary.Total)
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		name  string
		last7 int
		prev7 int
		want  string
	}{
		{"both empty", 0, 0, "0%"},
		{"empty baseline saturates", 3, 0, "100%"},
		{"decrease", 2, 4, "-50%"},
		{"increase", 6, 4, "+50%"},
		{"flat", 4, 4, "+0%"},
		{"everything stopped", 0, 5, "-100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDelta(tt.last7, tt.prev7))
		})
	}
}

func TestFormatValueGroupsThousands(t *testing.T) {
	assert.Equal(t, "1,234.50", formatValue(1234.5))
	assert.Equal(t, "0.00", formatValue(0))
}

func TestCategoryBreakdownSortsByWastedCount(t *testing.T) {
	events := []*entities.WasteEvent{
		eventOn(statsNow, OutcomeEaten, "Dairy", floatPtr(2)),
		eventOn(statsNow, OutcomeSpoiled, "Produce", floatPtr(4)),
		eventOn(statsNow, OutcomeSpoiled, "Produce", floatPtr(1)),
		eventOn(statsNow, OutcomeSpoiled, "Dairy", floatPtr(3)),
		eventOn(statsNow, OutcomeEaten, "", floatPtr(7)),
	}

	stats := ComputeStats(events, statsNow)

	require.Len(t, stats.CategoryBreakdown, 3)
	produce := stats.CategoryBreakdown[0]
	assert.Equal(t, "Produce", produce.Category)
	assert.Equal(t, 2, produce.WastedCount)
	assert.Equal(t, 5.0, produce.WastedValue)

	dairy := stats.CategoryBreakdown[1]
	assert.Equal(t, "Dairy", dairy.Category)
	assert.Equal(t, 1, dairy.WastedCount)
	assert.Equal(t, 1, dairy.SavedCount)
	assert.Equal(t, 3.0, dairy.WastedValue)
	assert.Equal(t, 2.0, dairy.SavedValue)

	assert.Equal(t, CategoryUncategorized, stats.CategoryBreakdown[2].Category)
	assert.Equal(t, 7.0, stats.CategoryBreakdown[2].SavedValue)
}

func TestCategoryBreakdownTiesKeepEncounterOrder(t *testing.T) {
	events := []*entities.WasteEvent{
		eventOn(statsNow, OutcomeSpoiled, "Bakery", nil),
		eventOn(statsNow, OutcomeSpoiled, "Dairy", nil),
	}

	stats := ComputeStats(events, statsNow)

	require.Len(t, stats.CategoryBreakdown, 2)
	assert.Equal(t, "Bakery", stats.CategoryBreakdown[0].Category)
	assert.Equal(t, "Dairy", stats.CategoryBreakdown[1].Category)
}

func TestDispositionOutcome(t *testing.T) {
	assert.Equal(t, OutcomeEaten, DispositionOutcome("fresh"))
	assert.Equal(t, OutcomeEaten, DispositionOutcome("Expiring"))
	assert.Equal(t, OutcomeSpoiled, DispositionOutcome("expired"))
	assert.Equal(t, OutcomeSpoiled, DispositionOutcome(""))
	assert.Equal(t, OutcomeSpoiled, DispositionOutcome("unknown"))
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "Dairy", NormalizeCategory("Dairy"))
	assert.Equal(t, CategoryUncategorized, NormalizeCategory(""))
	assert.Equal(t, CategoryUncategorized, NormalizeCategory("   "))
}
