// Package gateway defines the boundary between the domain services and the
// remote data store: filtered queries, row writes and stored-procedure calls,
// all scoped to the user carried in the request context.
package gateway

import (
	"context"

	"github.com/google/uuid"
)

// Entity names a table behind the gateway.
type Entity string

const (
	Transactions           Entity = "transactions"
	Categories             Entity = "categories"
	PaymentMethods         Entity = "payment_methods"
	MonthlyBudgets         Entity = "monthly_budgets"
	AnnualBudgets          Entity = "annual_budgets"
	BudgetPerformance      Entity = "budget_performance"
	FinancialGoals         Entity = "financial_goals"
	Investments            Entity = "investments"
	SavingsRecommendations Entity = "savings_recommendations"
)

// Procedure names a stored procedure returning a JSON document.
type Procedure string

const (
	DashboardAnalytics        Procedure = "get_dashboard_analytics"
	SpendingTrends            Procedure = "get_spending_trends"
	CategorySpendingBreakdown Procedure = "get_category_spending_breakdown"
	SavingsRateAnalysis       Procedure = "get_savings_rate_analysis"
	GoalProgressSummary       Procedure = "get_goal_progress_summary"
	InvestmentSummary         Procedure = "get_investment_summary"
	InvestmentPerformance     Procedure = "get_investment_performance"
	BudgetVsActualChart       Procedure = "get_budget_vs_actual_chart_data"
	FinancialYearSummary      Procedure = "get_financial_year_summary"
	CategoryBudgetAnalysis    Procedure = "get_category_budget_analysis"
)

// Values is a column to value mapping for writes and procedure parameters.
type Values map[string]any

// Gateway is the only path from the domain services to stored data.
// Implementations enforce per-user ownership: reads only see the current user's
// rows (plus shared defaults where an entity has them) and writes are stamped
// with the current user. Implementations must be safe for concurrent use.
type Gateway interface {
	// CurrentUser returns the authenticated user carried by ctx.
	CurrentUser(ctx context.Context) (uuid.UUID, bool)

	// Query loads the rows of entity matching filter, in order, into dest
	// (a pointer to a slice of structs).
	Query(ctx context.Context, entity Entity, filter Filter, order []Order, dest any) error

	// Insert writes one row and scans the stored row into dest.
	Insert(ctx context.Context, entity Entity, values Values, dest any) error

	// InsertMany writes all rows atomically and scans them into dest
	// (a pointer to a slice). Either every row is stored or none is.
	InsertMany(ctx context.Context, entity Entity, rows []Values, dest any) error

	// Update patches the row with id and scans the result into dest.
	Update(ctx context.Context, entity Entity, id uuid.UUID, patch Values, dest any) error

	// Upsert inserts values or, when a row with the same conflictKeys exists,
	// updates it. The stored row is scanned into dest.
	Upsert(ctx context.Context, entity Entity, values Values, conflictKeys []string, dest any) error

	// Delete removes the row with id.
	Delete(ctx context.Context, entity Entity, id uuid.UUID) error

	// Call invokes a stored procedure and decodes its JSON result into dest.
	// The current user is passed as p_user_id.
	Call(ctx context.Context, proc Procedure, params Values, dest any) error
}

type userKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
