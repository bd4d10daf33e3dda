package waste

import "strings"

const (
	OutcomeEaten   = "eaten"
	OutcomeSpoiled = "spoiled"

	// CategoryUncategorized is the bucket for events whose item had no
	// category.
	CategoryUncategorized = "Uncategorized"
)

// DispositionOutcome maps an item's last-known expiry status to the outcome
// recorded on its waste event. An item removed while still fresh or expiring
// counts as eaten; anything else, including an empty or unrecognized status,
// falls through to spoiled.
func DispositionOutcome(status string) string {
	switch strings.ToLower(status) {
	case "fresh", "expiring":
		return OutcomeEaten
	default:
		return OutcomeSpoiled
	}
}

// NormalizeCategory substitutes the uncategorized bucket for empty input.
func NormalizeCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return CategoryUncategorized
	}
	return category
}
