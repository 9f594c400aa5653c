package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/aggregate"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
)

var (
	monthlyBudgetKeys = []string{"user_id", "category_id", "financial_year", "month"}
	annualBudgetKeys  = []string{"user_id", "category_id", "financial_year"}
	performanceKeys   = []string{"user_id", "category_id", "financial_year", "month"}
)

// BudgetService plans monthly and annual budgets per category and tracks
// how actual spending performs against them. A zero financial year always
// means the current one.
type BudgetService struct {
	gw  gateway.Gateway
	now Clock
}

func NewBudgetService(gw gateway.Gateway) *BudgetService {
	return &BudgetService{gw: gw, now: time.Now}
}

type SetMonthlyBudgetInput struct {
	CategoryID    uuid.UUID       `json:"categoryId" validate:"required" label:"Category"`
	FinancialYear int             `json:"financialYear" validate:"omitempty,gte=2000,lte=2100"`
	Month         int             `json:"month" validate:"required,gte=1,lte=12"`
	BudgetAmount  decimal.Decimal `json:"budgetAmount" validate:"gte=0"`
	Notes         string          `json:"notes"`
}

type UpdateMonthlyBudgetInput struct {
	BudgetAmount *decimal.Decimal `json:"budgetAmount" validate:"omitempty,gte=0"`
	Notes        *string          `json:"notes"`
}

type SetAnnualBudgetInput struct {
	CategoryID    uuid.UUID       `json:"categoryId" validate:"required" label:"Category"`
	FinancialYear int             `json:"financialYear" validate:"omitempty,gte=2000,lte=2100"`
	BudgetAmount  decimal.Decimal `json:"budgetAmount" validate:"gte=0"`
}

type RecordPerformanceInput struct {
	CategoryID    uuid.UUID       `json:"categoryId" validate:"required" label:"Category"`
	FinancialYear int             `json:"financialYear" validate:"omitempty,gte=2000,lte=2100"`
	Month         int             `json:"month" validate:"required,gte=1,lte=12"`
	TotalIncome   decimal.Decimal `json:"totalIncome" validate:"gte=0"`
	TotalExpense  decimal.Decimal `json:"totalExpense" validate:"gte=0"`
	BudgetAmount  decimal.Decimal `json:"budgetAmount" validate:"gte=0"`
}

// BudgetTotals sums the planned amounts of one financial year.
type BudgetTotals struct {
	FinancialYear int             `json:"financialYear"`
	MonthlyTotal  decimal.Decimal `json:"monthlyTotal"`
	AnnualTotal   decimal.Decimal `json:"annualTotal"`
	Categories    int             `json:"categories"`
}

// SetMonthly creates or replaces the budget of a category for one month.
func (s *BudgetService) SetMonthly(ctx context.Context, input SetMonthlyBudgetInput) (*model.MonthlyBudget, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, s.gw, input.CategoryID); err != nil {
		return nil, err
	}

	values := gateway.Values{
		"category_id":    input.CategoryID,
		"financial_year": resolveFinancialYear(input.FinancialYear, s.now()),
		"month":          input.Month,
		"budget_amount":  input.BudgetAmount,
		"notes":          optional(input.Notes),
	}
	var b model.MonthlyBudget
	if err := s.gw.Upsert(ctx, gateway.MonthlyBudgets, values, monthlyBudgetKeys, &b); err != nil {
		return nil, fmt.Errorf("setting monthly budget: %w", err)
	}
	return &b, nil
}

func (s *BudgetService) UpdateMonthly(ctx context.Context, id uuid.UUID, input UpdateMonthlyBudgetInput) (*model.MonthlyBudget, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	patch := gateway.Values{}
	if input.BudgetAmount != nil {
		patch["budget_amount"] = *input.BudgetAmount
	}
	if input.Notes != nil {
		patch["notes"] = optional(*input.Notes)
	}

	var b model.MonthlyBudget
	if err := s.gw.Update(ctx, gateway.MonthlyBudgets, id, patch, &b); err != nil {
		return nil, fmt.Errorf("updating monthly budget %s: %w", id, err)
	}
	return &b, nil
}

func (s *BudgetService) DeleteMonthly(ctx context.Context, id uuid.UUID) error {
	if err := s.gw.Delete(ctx, gateway.MonthlyBudgets, id); err != nil {
		return fmt.Errorf("deleting monthly budget %s: %w", id, err)
	}
	return nil
}

// ListMonthly returns the monthly budgets of a financial year ordered by
// month. A month of 0 lists every month.
func (s *BudgetService) ListMonthly(ctx context.Context, financialYear, month int) ([]model.MonthlyBudget, error) {
	f := gateway.Where(gateway.Eq("financial_year", resolveFinancialYear(financialYear, s.now())))
	if month != 0 {
		if err := validMonth(month); err != nil {
			return nil, err
		}
		f = f.And(gateway.Eq("month", month))
	}

	var budgets []model.MonthlyBudget
	if err := s.gw.Query(ctx, gateway.MonthlyBudgets, f, gateway.OrderBy(gateway.Asc("month")), &budgets); err != nil {
		return nil, fmt.Errorf("listing monthly budgets: %w", err)
	}
	if budgets == nil {
		budgets = []model.MonthlyBudget{}
	}
	return budgets, nil
}

// SetAnnual creates or replaces the yearly budget of a category.
func (s *BudgetService) SetAnnual(ctx context.Context, input SetAnnualBudgetInput) (*model.AnnualBudget, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, s.gw, input.CategoryID); err != nil {
		return nil, err
	}

	values := gateway.Values{
		"category_id":    input.CategoryID,
		"financial_year": resolveFinancialYear(input.FinancialYear, s.now()),
		"budget_amount":  input.BudgetAmount,
	}
	var b model.AnnualBudget
	if err := s.gw.Upsert(ctx, gateway.AnnualBudgets, values, annualBudgetKeys, &b); err != nil {
		return nil, fmt.Errorf("setting annual budget: %w", err)
	}
	return &b, nil
}

func (s *BudgetService) ListAnnual(ctx context.Context, financialYear int) ([]model.AnnualBudget, error) {
	f := gateway.Where(gateway.Eq("financial_year", resolveFinancialYear(financialYear, s.now())))

	var budgets []model.AnnualBudget
	if err := s.gw.Query(ctx, gateway.AnnualBudgets, f, gateway.OrderBy(gateway.Asc("created_at")), &budgets); err != nil {
		return nil, fmt.Errorf("listing annual budgets: %w", err)
	}
	if budgets == nil {
		budgets = []model.AnnualBudget{}
	}
	return budgets, nil
}

func (s *BudgetService) DeleteAnnual(ctx context.Context, id uuid.UUID) error {
	if err := s.gw.Delete(ctx, gateway.AnnualBudgets, id); err != nil {
		return fmt.Errorf("deleting annual budget %s: %w", id, err)
	}
	return nil
}

// RecordPerformance stores the actual income and spend of a category for one
// month, replacing an earlier record.
func (s *BudgetService) RecordPerformance(ctx context.Context, input RecordPerformanceInput) (*model.BudgetUtilization, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, s.gw, input.CategoryID); err != nil {
		return nil, err
	}

	values := gateway.Values{
		"category_id":    input.CategoryID,
		"financial_year": resolveFinancialYear(input.FinancialYear, s.now()),
		"month":          input.Month,
		"total_income":   input.TotalIncome,
		"total_expense":  input.TotalExpense,
		"budget_amount":  input.BudgetAmount,
	}
	var row model.BudgetPerformance
	if err := s.gw.Upsert(ctx, gateway.BudgetPerformance, values, performanceKeys, &row); err != nil {
		return nil, fmt.Errorf("recording budget performance: %w", err)
	}
	return &aggregate.BudgetUtilization([]model.BudgetPerformance{row})[0], nil
}

// Performance returns the recorded rows of a financial year annotated with
// utilization and status. A month of 0 returns every month.
func (s *BudgetService) Performance(ctx context.Context, financialYear, month int) ([]model.BudgetUtilization, error) {
	f := gateway.Where(gateway.Eq("financial_year", resolveFinancialYear(financialYear, s.now())))
	if month != 0 {
		if err := validMonth(month); err != nil {
			return nil, err
		}
		f = f.And(gateway.Eq("month", month))
	}

	var rows []model.BudgetPerformance
	if err := s.gw.Query(ctx, gateway.BudgetPerformance, f, gateway.OrderBy(gateway.Asc("month")), &rows); err != nil {
		return nil, fmt.Errorf("listing budget performance: %w", err)
	}
	return aggregate.BudgetUtilization(rows), nil
}

// Totals sums the monthly and annual budgets of a financial year.
func (s *BudgetService) Totals(ctx context.Context, financialYear int) (*BudgetTotals, error) {
	fy := resolveFinancialYear(financialYear, s.now())

	monthly, err := s.ListMonthly(ctx, fy, 0)
	if err != nil {
		return nil, err
	}
	annual, err := s.ListAnnual(ctx, fy)
	if err != nil {
		return nil, err
	}

	categories := map[uuid.UUID]struct{}{}
	for _, b := range monthly {
		categories[b.CategoryID] = struct{}{}
	}
	for _, b := range annual {
		categories[b.CategoryID] = struct{}{}
	}

	return &BudgetTotals{
		FinancialYear: fy,
		MonthlyTotal:  aggregate.TotalMonthlyBudget(monthly),
		AnnualTotal:   aggregate.TotalAnnualBudget(annual),
		Categories:    len(categories),
	}, nil
}

// Summary reports income, spend and budget use across a financial year.
func (s *BudgetService) Summary(ctx context.Context, financialYear int) (*model.FinancialYearSummary, error) {
	params := gateway.Values{"p_financial_year": resolveFinancialYear(financialYear, s.now())}

	var out model.FinancialYearSummary
	if err := s.gw.Call(ctx, gateway.FinancialYearSummary, params, &out); err != nil {
		return nil, fmt.Errorf("loading financial year summary: %w", err)
	}
	return &out, nil
}

// CategoryAnalysis compares one category's budgets with its spend, month by
// month.
func (s *BudgetService) CategoryAnalysis(ctx context.Context, financialYear int, categoryID uuid.UUID) (*model.CategoryBudgetAnalysis, error) {
	params := gateway.Values{
		"p_financial_year": resolveFinancialYear(financialYear, s.now()),
		"p_category_id":    categoryID,
	}

	var out model.CategoryBudgetAnalysis
	if err := s.gw.Call(ctx, gateway.CategoryBudgetAnalysis, params, &out); err != nil {
		return nil, fmt.Errorf("loading category budget analysis: %w", err)
	}
	return &out, nil
}

// Chart returns budgeted against actual spend for every month of a
// financial year.
func (s *BudgetService) Chart(ctx context.Context, financialYear int) ([]model.BudgetVsActual, error) {
	params := gateway.Values{"p_financial_year": resolveFinancialYear(financialYear, s.now())}

	var out []model.BudgetVsActual
	if err := s.gw.Call(ctx, gateway.BudgetVsActualChart, params, &out); err != nil {
		return nil, fmt.Errorf("loading budget chart: %w", err)
	}
	if out == nil {
		out = []model.BudgetVsActual{}
	}
	return out, nil
}
