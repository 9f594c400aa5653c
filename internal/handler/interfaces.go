package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/allocation"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
	"github.com/fintrack/backend/pkg/datetime"
)

// AuthServiceInterface for handler testing
type AuthServiceInterface interface {
	Register(ctx context.Context, input service.RegisterInput) (*service.AuthResponse, error)
	Login(ctx context.Context, input service.LoginInput) (*service.AuthResponse, error)
	Me(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input service.UpdateProfileInput) (*model.User, error)
}

// ReferenceServiceInterface for handler testing
type ReferenceServiceInterface interface {
	Reference() service.Reference
	FinancialYear(date datetime.Date) service.FinancialYearInfo
}

// TransactionServiceInterface for handler testing
type TransactionServiceInterface interface {
	Create(ctx context.Context, input service.CreateTransactionInput) (*model.Transaction, error)
	List(ctx context.Context, q service.TransactionQuery) ([]model.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, input service.UpdateTransactionInput) (*model.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Totals(ctx context.Context, q service.TransactionQuery) (model.TransactionTotals, error)
}

// CategoryServiceInterface for handler testing
type CategoryServiceInterface interface {
	List(ctx context.Context, catType model.CategoryType) ([]model.Category, error)
	ListDefaults(ctx context.Context, catType model.CategoryType) ([]model.Category, error)
	Create(ctx context.Context, input service.CreateCategoryInput) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, input service.UpdateCategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentMethodServiceInterface for handler testing
type PaymentMethodServiceInterface interface {
	List(ctx context.Context) ([]model.PaymentMethod, error)
	Create(ctx context.Context, input service.CreatePaymentMethodInput) (*model.PaymentMethod, error)
}

// BudgetServiceInterface for handler testing
type BudgetServiceInterface interface {
	SetMonthly(ctx context.Context, input service.SetMonthlyBudgetInput) (*model.MonthlyBudget, error)
	UpdateMonthly(ctx context.Context, id uuid.UUID, input service.UpdateMonthlyBudgetInput) (*model.MonthlyBudget, error)
	DeleteMonthly(ctx context.Context, id uuid.UUID) error
	ListMonthly(ctx context.Context, financialYear, month int) ([]model.MonthlyBudget, error)
	SetAnnual(ctx context.Context, input service.SetAnnualBudgetInput) (*model.AnnualBudget, error)
	ListAnnual(ctx context.Context, financialYear int) ([]model.AnnualBudget, error)
	DeleteAnnual(ctx context.Context, id uuid.UUID) error
	RecordPerformance(ctx context.Context, input service.RecordPerformanceInput) (*model.BudgetUtilization, error)
	Performance(ctx context.Context, financialYear, month int) ([]model.BudgetUtilization, error)
	Totals(ctx context.Context, financialYear int) (*service.BudgetTotals, error)
	Summary(ctx context.Context, financialYear int) (*model.FinancialYearSummary, error)
	CategoryAnalysis(ctx context.Context, financialYear int, categoryID uuid.UUID) (*model.CategoryBudgetAnalysis, error)
	Chart(ctx context.Context, financialYear int) ([]model.BudgetVsActual, error)
}

// GoalServiceInterface for handler testing
type GoalServiceInterface interface {
	Create(ctx context.Context, input service.CreateGoalInput) (*model.GoalWithProgress, error)
	List(ctx context.Context, status model.GoalStatus) ([]model.GoalWithProgress, error)
	Get(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error)
	Update(ctx context.Context, id uuid.UUID, input service.UpdateGoalInput) (*model.GoalWithProgress, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddProgress(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*model.GoalWithProgress, error)
	Pause(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error)
	Activate(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error)
	Complete(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error)
	Cancel(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error)
	Summary(ctx context.Context) (model.GoalSummary, error)
	Groups(ctx context.Context) (*service.GoalGroups, error)
	ProgressSummary(ctx context.Context) (*model.GoalProgressSummary, error)
}

// InvestmentServiceInterface for handler testing
type InvestmentServiceInterface interface {
	Create(ctx context.Context, input service.CreateInvestmentInput) (*model.Investment, error)
	List(ctx context.Context, activeOnly bool) ([]model.InvestmentWithPortfolio, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Investment, error)
	Update(ctx context.Context, id uuid.UUID, input service.UpdateInvestmentInput) (*model.Investment, error)
	UpdateValue(ctx context.Context, id uuid.UUID, value decimal.Decimal) (*model.Investment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Performance(ctx context.Context) (model.InvestmentPerformance, error)
	ByType(ctx context.Context) (map[model.InvestmentType][]model.Investment, error)
	Summary(ctx context.Context) (*model.InvestmentSummary, error)
	Returns(ctx context.Context) ([]model.InvestmentReturn, error)
}

// SavingsServiceInterface for handler testing
type SavingsServiceInterface interface {
	Preview(input service.GenerateRecommendationsInput) (allocation.Plan, error)
	Generate(ctx context.Context, input service.GenerateRecommendationsInput) (*service.GeneratedRecommendations, error)
	List(ctx context.Context, limit int) ([]model.SavingsRecommendation, error)
	Accept(ctx context.Context, id uuid.UUID) (*model.SavingsRecommendation, error)
	Complete(ctx context.Context, id uuid.UUID) (*model.SavingsRecommendation, error)
	Feedback(ctx context.Context, id uuid.UUID, feedback string) (*model.SavingsRecommendation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Pending(ctx context.Context) (*service.PendingRecommendations, error)
}

// AnalyticsServiceInterface for handler testing
type AnalyticsServiceInterface interface {
	Dashboard(ctx context.Context, financialYear int) (*model.DashboardAnalytics, error)
	SpendingTrends(ctx context.Context, months int) ([]model.MonthlyTrend, error)
	CategoryBreakdown(ctx context.Context, financialYear int) ([]model.CategorySpending, error)
	SavingsRate(ctx context.Context, financialYear int) (*model.SavingsRateAnalysis, error)
}
