package aggregate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/pkg/datetime"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func goal(title string, priority model.GoalPriority, status model.GoalStatus, target, current int64, due datetime.Date) model.FinancialGoal {
	return model.FinancialGoal{
		ID:            uuid.New(),
		Title:         title,
		Priority:      priority,
		Status:        status,
		TargetAmount:  dec(target),
		CurrentAmount: dec(current),
		TargetDate:    due,
	}
}

func TestGoalProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  int64
		current int64
		want    float64
	}{
		{"zero target", 0, 500, 0},
		{"half way", 1000, 500, 50},
		{"over funded", 1000, 1500, 150},
		{"fraction", 3, 1, 33.33},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := goal("g", model.GoalPriorityLow, model.GoalStatusActive, tt.target, tt.current, datetime.Today())
			assert.Equal(t, tt.want, GoalProgress(g))
		})
	}
}

func TestBudgetStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		utilization float64
		want        model.BudgetStatus
	}{
		{0, model.BudgetStatusOnTrack},
		{79, model.BudgetStatusOnTrack},
		{79.99, model.BudgetStatusOnTrack},
		{80, model.BudgetStatusWarning},
		{99.99, model.BudgetStatusWarning},
		{100, model.BudgetStatusOverBudget},
		{150, model.BudgetStatusOverBudget},
		{-1, model.BudgetStatusUnderBudget},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BudgetStatusFor(tt.utilization), "utilization %v", tt.utilization)
	}
}

func TestBudgetUtilization(t *testing.T) {
	rows := []model.BudgetPerformance{
		{Month: 1, TotalIncome: dec(1000), TotalExpense: dec(790)},
		{Month: 2, TotalIncome: dec(1000), TotalExpense: dec(800)},
		{Month: 3, TotalIncome: dec(0), TotalExpense: dec(50)},
		{Month: 4, TotalIncome: dec(0), TotalExpense: dec(0)},
		{Month: 5, TotalIncome: dec(100000), TotalExpense: dec(79996)},
		{Month: 6, TotalIncome: dec(100000), TotalExpense: dec(99996)},
	}

	got := BudgetUtilization(rows)

	require.Len(t, got, 6)
	assert.Equal(t, 79.0, got[0].UtilizationPercentage)
	assert.Equal(t, model.BudgetStatusOnTrack, got[0].Status)
	assert.Equal(t, model.BudgetStatusWarning, got[1].Status)
	assert.Equal(t, 5000.0, got[2].UtilizationPercentage)
	assert.Equal(t, model.BudgetStatusOverBudget, got[2].Status)
	assert.Equal(t, 0.0, got[3].UtilizationPercentage)
	assert.Equal(t, 1, got[0].Month)

	// Rounded figures are reported but status follows the exact ratio.
	assert.Equal(t, 80.0, got[4].UtilizationPercentage)
	assert.Equal(t, model.BudgetStatusOnTrack, got[4].Status)
	assert.Equal(t, 100.0, got[5].UtilizationPercentage)
	assert.Equal(t, model.BudgetStatusWarning, got[5].Status)
}

func TestPortfolioPercentage(t *testing.T) {
	t.Run("no active investments", func(t *testing.T) {
		investments := []model.Investment{
			{Name: "closed", CurrentValue: dec(1000), IsActive: false},
		}
		for _, inv := range WithPortfolio(investments) {
			assert.Equal(t, 0.0, inv.PortfolioPercentage)
		}
		assert.Equal(t, 0.0, PortfolioPercentage(investments[0], nil))
	})

	t.Run("shares of active value", func(t *testing.T) {
		investments := []model.Investment{
			{Name: "fd", InitialAmount: dec(2000), CurrentValue: dec(2500), IsActive: true},
			{Name: "stock", InitialAmount: dec(8000), CurrentValue: dec(7500), IsActive: true},
			{Name: "sold", InitialAmount: dec(100), CurrentValue: dec(10000), IsActive: false},
		}

		got := WithPortfolio(investments)

		assert.Equal(t, 25.0, got[0].PortfolioPercentage)
		assert.Equal(t, 75.0, got[1].PortfolioPercentage)
		assert.True(t, got[0].Returns.Equal(dec(500)))
		assert.True(t, got[1].Returns.Equal(dec(-500)))
		assert.Equal(t, 25.0, PortfolioPercentage(investments[0], investments))
	})
}

func TestSummarizeInvestments(t *testing.T) {
	investments := []model.Investment{
		{InitialAmount: dec(1000), CurrentValue: dec(1200), IsActive: true},
		{InitialAmount: dec(1000), CurrentValue: dec(900), IsActive: true},
		{InitialAmount: dec(1000), CurrentValue: dec(1000), IsActive: true},
		{InitialAmount: dec(500), CurrentValue: dec(5000), IsActive: false},
	}

	p := SummarizeInvestments(investments)

	assert.Equal(t, 3, p.TotalInvestments)
	assert.Equal(t, 1, p.Profitable)
	assert.Equal(t, 1, p.Losing)
	assert.True(t, p.TotalReturns.Equal(dec(100)))
	assert.Equal(t, 3.33, p.ReturnPercentage)
}

func TestSortGoals(t *testing.T) {
	early := datetime.NewDate(2025, time.January, 1)
	late := datetime.NewDate(2026, time.January, 1)
	goals := []model.FinancialGoal{
		goal("low", model.GoalPriorityLow, model.GoalStatusActive, 1, 0, early),
		goal("medium", model.GoalPriorityMedium, model.GoalStatusActive, 1, 0, early),
		goal("high late", model.GoalPriorityHigh, model.GoalStatusActive, 1, 0, late),
		goal("high early", model.GoalPriorityHigh, model.GoalStatusActive, 1, 0, early),
	}
	original := append([]model.FinancialGoal(nil), goals...)

	sorted := SortGoals(goals)

	titles := make([]string, len(sorted))
	for i, g := range sorted {
		titles[i] = g.Title
	}
	assert.Equal(t, []string{"high early", "high late", "medium", "low"}, titles)
	assert.Equal(t, original, goals, "input must not be reordered")
}

func TestSortTransactions(t *testing.T) {
	txs := []model.Transaction{
		{Title: "old", Date: datetime.NewDate(2024, 1, 1)},
		{Title: "new", Date: datetime.NewDate(2024, 6, 1)},
		{Title: "mid", Date: datetime.NewDate(2024, 3, 1)},
	}

	sorted := SortTransactions(txs)

	assert.Equal(t, "new", sorted[0].Title)
	assert.Equal(t, "mid", sorted[1].Title)
	assert.Equal(t, "old", sorted[2].Title)
	assert.Equal(t, "old", txs[0].Title)
}

func TestPartitionKeepsEveryKeyAndOrder(t *testing.T) {
	goals := []model.FinancialGoal{
		goal("a", model.GoalPriorityHigh, model.GoalStatusActive, 1, 0, datetime.Today()),
		goal("b", model.GoalPriorityLow, model.GoalStatusPaused, 1, 0, datetime.Today()),
		goal("c", model.GoalPriorityHigh, model.GoalStatusActive, 1, 0, datetime.Today()),
		goal("d", model.GoalPriority("urgent"), model.GoalStatus("archived"), 1, 0, datetime.Today()),
	}

	byStatus := GoalsByStatus(goals)
	require.Len(t, byStatus, 4)
	assert.Len(t, byStatus[model.GoalStatusActive], 2)
	assert.Equal(t, "a", byStatus[model.GoalStatusActive][0].Title)
	assert.Equal(t, "c", byStatus[model.GoalStatusActive][1].Title)
	assert.Empty(t, byStatus[model.GoalStatusCancelled])
	assert.NotNil(t, byStatus[model.GoalStatusCancelled])

	byPriority := GoalsByPriority(goals)
	require.Len(t, byPriority, 3)
	assert.Len(t, byPriority[model.GoalPriorityHigh], 2)
	assert.Empty(t, byPriority[model.GoalPriorityMedium])
}

func TestSummarizeGoals(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	goals := []model.FinancialGoal{
		goal("overdue", model.GoalPriorityHigh, model.GoalStatusActive, 1000, 250, datetime.NewDate(2024, 6, 1)),
		goal("due today", model.GoalPriorityMedium, model.GoalStatusActive, 1000, 750, datetime.NewDate(2024, 6, 15)),
		goal("due in a month", model.GoalPriorityLow, model.GoalStatusActive, 2000, 0, datetime.NewDate(2024, 7, 15)),
		goal("far", model.GoalPriorityLow, model.GoalStatusActive, 0, 0, datetime.NewDate(2025, 1, 1)),
		goal("done", model.GoalPriorityLow, model.GoalStatusCompleted, 500, 500, datetime.NewDate(2024, 1, 1)),
		goal("paused", model.GoalPriorityLow, model.GoalStatusPaused, 500, 10, datetime.NewDate(2024, 1, 1)),
	}

	s := SummarizeGoals(goals, now)

	assert.Equal(t, 6, s.TotalGoals)
	assert.Equal(t, 4, s.ActiveGoals)
	assert.Equal(t, 1, s.CompletedGoals)
	assert.Equal(t, 1, s.PausedGoals)
	assert.Equal(t, 1, s.OverdueGoals)
	assert.Equal(t, 2, s.DueSoonGoals)
	assert.True(t, s.TotalTarget.Equal(dec(4000)))
	assert.True(t, s.TotalCurrent.Equal(dec(1000)))
	assert.Equal(t, 25.0, s.TotalProgress)
}

func TestTotalsOf(t *testing.T) {
	txs := []model.Transaction{
		{Type: model.TransactionTypeIncome, Amount: dec(50000)},
		{Type: model.TransactionTypeExpense, Amount: dec(1200)},
		{Type: model.TransactionTypeExpense, Amount: dec(800)},
		{Type: model.TransactionTypeTransfer, Amount: dec(10000)},
	}

	totals := TotalsOf(txs)

	assert.True(t, totals.TotalIncome.Equal(dec(50000)))
	assert.True(t, totals.TotalExpenses.Equal(dec(2000)))
	assert.True(t, totals.Balance.Equal(dec(48000)))
	assert.Equal(t, 4, totals.Count)
}

func TestFilterTransactions(t *testing.T) {
	groceries := uuid.New()
	note := "weekly vegetables"
	txs := []model.Transaction{
		{Title: "Big Basket", Description: &note, Type: model.TransactionTypeExpense, CategoryID: groceries, Amount: dec(1500), PaymentMethod: "UPI", Date: datetime.NewDate(2024, 5, 2)},
		{Title: "Salary", Type: model.TransactionTypeIncome, Amount: dec(90000), PaymentMethod: "Net Banking", Date: datetime.NewDate(2024, 5, 1)},
		{Title: "Petrol", Type: model.TransactionTypeExpense, Amount: dec(2500), PaymentMethod: "UPI", Tags: pq.StringArray{"Commute"}, Date: datetime.NewDate(2024, 5, 10)},
	}

	t.Run("by type sorted newest first", func(t *testing.T) {
		got := FilterTransactions(txs, TransactionFilter{Type: model.TransactionTypeExpense})
		require.Len(t, got, 2)
		assert.Equal(t, "Petrol", got[0].Title)
	})

	t.Run("by category", func(t *testing.T) {
		got := FilterTransactions(txs, TransactionFilter{CategoryID: groceries})
		require.Len(t, got, 1)
		assert.Equal(t, "Big Basket", got[0].Title)
	})

	t.Run("by amount range and date", func(t *testing.T) {
		got := FilterTransactions(txs, TransactionFilter{
			AmountMin: dec(1000),
			AmountMax: dec(3000),
			DateTo:    datetime.NewDate(2024, 5, 5),
		})
		require.Len(t, got, 1)
		assert.Equal(t, "Big Basket", got[0].Title)
	})

	t.Run("search matches description and tags", func(t *testing.T) {
		assert.Len(t, FilterTransactions(txs, TransactionFilter{Search: "VEGETABLES"}), 1)
		assert.Len(t, FilterTransactions(txs, TransactionFilter{Search: "commute"}), 1)
		assert.Empty(t, FilterTransactions(txs, TransactionFilter{Search: "rent"}))
	})
}

func TestRecommendationViews(t *testing.T) {
	recs := []model.SavingsRecommendation{
		{Category: "emergency_fund", Priority: model.RecommendationPriorityHigh, RecommendedAmount: dec(3000)},
		{Category: "fixed_deposit", Priority: model.RecommendationPriorityMedium, RecommendedAmount: dec(2000), IsAccepted: true},
		{Category: "fixed_deposit", Priority: model.RecommendationPriorityHigh, RecommendedAmount: dec(1000), IsAccepted: true, IsCompleted: true},
	}

	assert.Len(t, PendingRecommendations(recs), 2)
	assert.Len(t, AcceptedRecommendations(recs), 2)
	assert.Len(t, HighPriorityRecommendations(recs), 1)
	assert.True(t, PendingRecommendedTotal(recs).Equal(dec(5000)))
	assert.Len(t, RecommendationsByCategory(recs)["fixed_deposit"], 2)
}

func TestAggregationsAreIdempotent(t *testing.T) {
	investments := []model.Investment{
		{CurrentValue: dec(100), IsActive: true},
		{CurrentValue: dec(300), IsActive: true},
	}

	assert.Equal(t, WithPortfolio(investments), WithPortfolio(investments))
	assert.Equal(t, SummarizeInvestments(investments), SummarizeInvestments(investments))
}
