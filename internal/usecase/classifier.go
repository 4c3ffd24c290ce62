package usecase

import "github.com/pantrymatch/backend/internal/domain"

// Percentage thresholds for availability tiers
const (
	availableThreshold = 90
	partialThreshold   = 50
)

// Classify buckets a match percentage into an availability status
func Classify(percentage int) domain.AvailabilityStatus {
	switch {
	case percentage >= availableThreshold:
		return domain.StatusAvailable
	case percentage >= partialThreshold:
		return domain.StatusPartial
	default:
		return domain.StatusUnavailable
	}
}

// ClassifyScore is Classify for an optional score.
// A missing score, or a recipe with no ingredients, is unknown.
func ClassifyScore(score *domain.MatchScore) domain.AvailabilityStatus {
	if score == nil || score.TotalIngredients == 0 {
		return domain.StatusUnknown
	}
	return Classify(score.MatchPercentage)
}

// StatusLabel returns the human-readable text for a status
func StatusLabel(status domain.AvailabilityStatus) string {
	switch status {
	case domain.StatusAvailable:
		return "Ready to cook"
	case domain.StatusPartial:
		return "Missing a few"
	case domain.StatusUnavailable:
		return "Need to shop"
	default:
		return "No data"
	}
}

// StatusTier returns the calendar color for a status
func StatusTier(status domain.AvailabilityStatus) string {
	switch status {
	case domain.StatusAvailable:
		return "green"
	case domain.StatusPartial:
		return "yellow"
	case domain.StatusUnavailable:
		return "red"
	default:
		return "gray"
	}
}
