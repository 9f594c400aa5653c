package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/model"
)

var one = decimal.NewFromInt(1)

// utilizationOf is expense as an unrounded percentage of income. Income below one
// rupee is treated as one so the ratio stays finite.
func utilizationOf(totalIncome, totalExpense decimal.Decimal) decimal.Decimal {
	if totalExpense.IsZero() {
		return decimal.Zero
	}
	return totalExpense.Div(decimal.Max(totalIncome, one)).Mul(hundred)
}

// BudgetStatusFor classifies a utilization percentage.
func BudgetStatusFor(utilization float64) model.BudgetStatus {
	switch {
	case utilization >= OverBudgetThreshold:
		return model.BudgetStatusOverBudget
	case utilization >= WarningThreshold:
		return model.BudgetStatusWarning
	case utilization >= 0:
		return model.BudgetStatusOnTrack
	default:
		// Utilization is never negative for non-negative amounts; kept so that
		// corrupt rows with negative totals still classify.
		return model.BudgetStatusUnderBudget
	}
}

// BudgetUtilization annotates performance rows with utilization and status.
func BudgetUtilization(rows []model.BudgetPerformance) []model.BudgetUtilization {
	out := make([]model.BudgetUtilization, len(rows))
	for i, r := range rows {
		exact := utilizationOf(r.TotalIncome, r.TotalExpense)
		out[i] = model.BudgetUtilization{
			BudgetPerformance:     r,
			UtilizationPercentage: exact.Round(2).InexactFloat64(),
			Status:                BudgetStatusFor(exact.InexactFloat64()),
		}
	}
	return out
}

// TotalMonthlyBudget sums the budgeted amounts of monthly budgets.
func TotalMonthlyBudget(budgets []model.MonthlyBudget) decimal.Decimal {
	return Sum(budgets, func(b model.MonthlyBudget) decimal.Decimal { return b.BudgetAmount })
}

// TotalAnnualBudget sums the budgeted amounts of annual budgets.
func TotalAnnualBudget(budgets []model.AnnualBudget) decimal.Decimal {
	return Sum(budgets, func(b model.AnnualBudget) decimal.Decimal { return b.BudgetAmount })
}
