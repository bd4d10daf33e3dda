package pantry

import (
	"strings"
	"time"

	"freshtrack-backend/entities"

	"github.com/google/uuid"
)

const (
	StatusFresh    = "fresh"
	StatusExpiring = "expiring"
	StatusExpired  = "expired"
)

// expiringWindowDays is the inclusive number of days before expiry during
// which an item counts as "expiring".
const expiringWindowDays = 3

// expiryLayouts is tried in order; the first layout that parses wins and no
// further layouts are attempted. Day-first "02/01/2006" is deliberately
// listed before month-first "01/02/2006": an ambiguous string like
// "05/04/2025" always resolves as 5 April. This precedence is a known
// ambiguity kept for compatibility, not a bug to fix.
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"02/01/2006",
	"01/02/2006",
}

// ParseExpiryDate folds the raw string over the layout chain. The boolean is
// false when no layout matches; the caller decides the fallback.
func ParseExpiryDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ClassifyExpiry maps a raw expiry date string to fresh/expiring/expired
// against the current UTC calendar date. It never fails: empty or
// unparseable input defaults to fresh.
func ClassifyExpiry(raw string) string {
	return ClassifyExpiryAt(raw, time.Now().UTC())
}

// ClassifyExpiryAt is ClassifyExpiry with an explicit "today" for testing.
func ClassifyExpiryAt(raw string, now time.Time) string {
	expiry, ok := ParseExpiryDate(raw)
	if !ok {
		return StatusFresh
	}

	days := daysUntil(now, expiry)
	switch {
	case days < 0:
		return StatusExpired
	case days <= expiringWindowDays:
		return StatusExpiring
	default:
		return StatusFresh
	}
}

// daysUntil compares calendar dates only, dropping time of day.
func daysUntil(now, expiry time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24)
}

// StatusUpdate is one pending write-back produced by Reclassify.
type StatusUpdate struct {
	ID     uuid.UUID
	Status string
}

// Reclassify recomputes the status of every item in place and returns the
// items whose stored status drifted from the derived one. The returned pairs
// are meant to be persisted in a single batch; the read result does not
// depend on that write succeeding.
func Reclassify(items []*entities.PantryItem, now time.Time) []StatusUpdate {
	var updates []StatusUpdate
	for _, item := range items {
		status := ClassifyExpiryAt(item.ExpiryDate, now)
		if item.Status != status {
			updates = append(updates, StatusUpdate{ID: item.ID, Status: status})
		}
		item.Status = status
	}
	return updates
}
