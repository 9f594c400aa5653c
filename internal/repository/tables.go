package repository

import (
	"slices"

	"github.com/fintrack/backend/internal/gateway"
)

// table describes how one entity is stored and who may see its rows.
type table struct {
	name    string
	columns []string
	// owned tables carry user_id and are always scoped to the current user.
	owned bool
	// shared tables additionally expose is_default rows to every user.
	shared    bool
	updatedAt bool
}

func (t table) has(col string) bool {
	return slices.Contains(t.columns, col)
}

func (t table) writable(col string) bool {
	return col != "created_at" && col != "updated_at" && t.has(col)
}

var tables = map[gateway.Entity]table{
	gateway.Transactions: {
		name: "transactions",
		columns: []string{
			"id", "user_id", "category_id", "title", "description", "amount", "type", "date",
			"payment_method", "bank_name", "reference_number", "tags", "is_recurring",
			"recurring_interval", "recurring_end_date", "created_at", "updated_at",
		},
		owned:     true,
		updatedAt: true,
	},
	gateway.Categories: {
		name: "categories",
		columns: []string{
			"id", "user_id", "name", "type", "icon", "color", "description", "is_default",
			"is_active", "created_at", "updated_at",
		},
		owned:     true,
		shared:    true,
		updatedAt: true,
	},
	gateway.PaymentMethods: {
		name:    "payment_methods",
		columns: []string{"id", "name", "description", "created_at"},
	},
	gateway.MonthlyBudgets: {
		name: "monthly_budgets",
		columns: []string{
			"id", "user_id", "category_id", "financial_year", "month", "budget_amount", "notes",
			"created_at", "updated_at",
		},
		owned:     true,
		updatedAt: true,
	},
	gateway.AnnualBudgets: {
		name: "annual_budgets",
		columns: []string{
			"id", "user_id", "category_id", "financial_year", "budget_amount", "created_at", "updated_at",
		},
		owned:     true,
		updatedAt: true,
	},
	gateway.BudgetPerformance: {
		name: "budget_performance",
		columns: []string{
			"id", "user_id", "category_id", "financial_year", "month", "total_income",
			"total_expense", "budget_amount", "created_at", "updated_at",
		},
		owned:     true,
		updatedAt: true,
	},
	gateway.FinancialGoals: {
		name: "financial_goals",
		columns: []string{
			"id", "user_id", "category_id", "title", "description", "target_amount",
			"current_amount", "target_date", "priority", "status", "auto_contribute",
			"contribution_amount", "contribution_frequency", "created_at", "updated_at",
		},
		owned:     true,
		updatedAt: true,
	},
	gateway.Investments: {
		name: "investments",
		columns: []string{
			"id", "user_id", "goal_id", "name", "type", "provider", "initial_amount",
			"current_value", "purchase_date", "maturity_date", "interest_rate", "is_active",
			"notes", "created_at", "updated_at",
		},
		owned:     true,
		updatedAt: true,
	},
	gateway.SavingsRecommendations: {
		name: "savings_recommendations",
		columns: []string{
			"id", "user_id", "title", "description", "recommended_amount", "priority", "category",
			"is_accepted", "is_completed", "user_feedback", "expires_at", "created_at", "updated_at",
		},
		owned:     true,
		updatedAt: true,
	},
}

var procedures = map[gateway.Procedure]bool{
	gateway.DashboardAnalytics:        true,
	gateway.SpendingTrends:            true,
	gateway.CategorySpendingBreakdown: true,
	gateway.SavingsRateAnalysis:       true,
	gateway.GoalProgressSummary:       true,
	gateway.InvestmentSummary:         true,
	gateway.InvestmentPerformance:     true,
	gateway.BudgetVsActualChart:       true,
	gateway.FinancialYearSummary:      true,
	gateway.CategoryBudgetAnalysis:    true,
}
