package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/model"
)

// PendingRecommendations returns recommendations not yet completed.
func PendingRecommendations(recs []model.SavingsRecommendation) []model.SavingsRecommendation {
	return Filter(recs, func(r model.SavingsRecommendation) bool { return !r.IsCompleted })
}

// AcceptedRecommendations returns recommendations the user accepted.
func AcceptedRecommendations(recs []model.SavingsRecommendation) []model.SavingsRecommendation {
	return Filter(recs, func(r model.SavingsRecommendation) bool { return r.IsAccepted })
}

// HighPriorityRecommendations returns pending high-priority recommendations.
func HighPriorityRecommendations(recs []model.SavingsRecommendation) []model.SavingsRecommendation {
	return Filter(PendingRecommendations(recs), func(r model.SavingsRecommendation) bool {
		return r.Priority == model.RecommendationPriorityHigh
	})
}

// PendingRecommendedTotal sums the amounts of recommendations not yet completed.
func PendingRecommendedTotal(recs []model.SavingsRecommendation) decimal.Decimal {
	return Sum(PendingRecommendations(recs), func(r model.SavingsRecommendation) decimal.Decimal {
		return r.RecommendedAmount
	})
}

// RecommendationsByCategory groups recommendations by category.
func RecommendationsByCategory(recs []model.SavingsRecommendation) map[string][]model.SavingsRecommendation {
	return GroupBy(recs, func(r model.SavingsRecommendation) string { return r.Category })
}
