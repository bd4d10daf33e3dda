package waste

import (
	"fmt"
	"sort"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/entities"

	"github.com/dustin/go-humanize"
)

// trendDays is the display window; together with the preceding window it
// forms the fixed 14-day delta lookback.
const trendDays = 7

// ComputeStats aggregates the waste-event log as of the given day. Trend and
// delta only see the 14-day lookback ending at asOf; totals, value sums and
// the category breakdown cover the whole log. Pure function over the slice,
// so it tests without a store.
func ComputeStats(events []*entities.WasteEvent, asOf time.Time) domain.EnhancedWasteStatsResponse {
	today := truncateToDay(asOf)

	countsByDay := make(map[time.Time]int)
	for _, event := range events {
		countsByDay[truncateToDay(event.DeletedAt.UTC())]++
	}

	trend := make([]domain.WastePoint, 0, trendDays)
	last7, prev7 := 0, 0
	for i := 2*trendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count := countsByDay[day]
		if i < trendDays {
			last7 += count
			trend = append(trend, domain.WastePoint{
				Label: day.Format("Mon"),
				Value: count,
			})
		} else {
			prev7 += count
		}
	}

	var savedValue, wastedValue float64
	for _, event := range events {
		value := 0.0
		if event.Value != nil {
			value = *event.Value
		}
		if event.Status == OutcomeEaten {
			savedValue += value
		} else {
			wastedValue += value
		}
	}

	summary := domain.WasteSummary{
		Total:                formatTotal(len(events)),
		Delta:                formatDelta(last7, prev7),
		SavedValue:           savedValue,
		WastedValue:          wastedValue,
		SavedValueFormatted:  formatValue(savedValue),
		WastedValueFormatted: formatValue(wastedValue),
	}

	return domain.EnhancedWasteStatsResponse{
		Trend:             trend,
		Summary:           summary,
		CategoryBreakdown: categoryBreakdown(events),
	}
}

func categoryBreakdown(events []*entities.WasteEvent) []domain.CategoryWaste {
	byCategory := make(map[string]*domain.CategoryWaste)
	var order []string

	for _, event := range events {
		category := NormalizeCategory(event.Category)
		group, ok := byCategory[category]
		if !ok {
			group = &domain.CategoryWaste{Category: category}
			byCategory[category] = group
			order = append(order, category)
		}

		value := 0.0
		if event.Value != nil {
			value = *event.Value
		}
		if event.Status == OutcomeEaten {
			group.SavedCount++
			group.SavedValue += value
		} else {
			group.WastedCount++
			group.WastedValue += value
		}
	}

	breakdown := make([]domain.CategoryWaste, 0, len(order))
	for _, category := range order {
		breakdown = append(breakdown, *byCategory[category])
	}

	// Descending by wasted count; ties keep first-encounter order.
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].WastedCount > breakdown[j].WastedCount
	})

	return breakdown
}

func formatTotal(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// formatDelta saturates instead of dividing by zero: an empty previous week
// reads as "100%" growth whenever the current week has any events at all.
func formatDelta(last7, prev7 int) string {
	if prev7 == 0 {
		if last7 == 0 {
			return "0%"
		}
		return "100%"
	}
	change := float64(last7-prev7) / float64(prev7) * 100
	return fmt.Sprintf("%+.0f%%", change)
}

// formatValue renders grouped thousands with two decimals and no currency
// symbol, e.g. "1,234.50".
func formatValue(amount float64) string {
	return humanize.FormatFloat("#,###.##", amount)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
