package services

import (
	"serviceconnect-server/models"
)

// CalculateJobComplexity scores a job from its budget, urgency and crew
// size. Pure function, identical for both data-access variants.
//
// Budget tiers: >5000 -> 30, >2000 -> 20, >500 -> 10.
// Urgency tiers: Urgent -> 40, High -> 30, Medium -> 15.
// Each required worker adds 10.
func CalculateJobComplexity(budget float64, urgencyLevel string, requiredWorkers int) int {
	score := 0

	switch {
	case budget > 5000:
		score += 30
	case budget > 2000:
		score += 20
	case budget > 500:
		score += 10
	}

	switch models.UrgencyLevel(urgencyLevel) {
	case models.UrgencyUrgent:
		score += 40
	case models.UrgencyHigh:
		score += 30
	case models.UrgencyMedium:
		score += 15
	}

	score += requiredWorkers * 10

	return score
}
