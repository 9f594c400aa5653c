package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
)

// DefaultTrendMonths is the spending trend window when none is given.
const DefaultTrendMonths = 12

// AnalyticsService serves the read-only dashboard views computed in the database.
type AnalyticsService struct {
	gw  gateway.Gateway
	now Clock
}

func NewAnalyticsService(gw gateway.Gateway) *AnalyticsService {
	return &AnalyticsService{gw: gw, now: time.Now}
}

// Dashboard returns income, expenses and top categories for a financial year.
// A financial year of 0 means the current one.
func (s *AnalyticsService) Dashboard(ctx context.Context, financialYear int) (*model.DashboardAnalytics, error) {
	var out model.DashboardAnalytics
	params := gateway.Values{"p_financial_year": resolveFinancialYear(financialYear, s.now())}
	if err := s.gw.Call(ctx, gateway.DashboardAnalytics, params, &out); err != nil {
		return nil, fmt.Errorf("loading dashboard analytics: %w", err)
	}
	return &out, nil
}

// SpendingTrends returns month-by-month income and expenses for the last
// months, oldest first.
func (s *AnalyticsService) SpendingTrends(ctx context.Context, months int) ([]model.MonthlyTrend, error) {
	if months == 0 {
		months = DefaultTrendMonths
	}
	if months < 1 || months > 60 {
		return nil, apperror.ValidationError("months", fmt.Sprintf("Months must be between 1 and 60, got %d", months))
	}

	var out []model.MonthlyTrend
	if err := s.gw.Call(ctx, gateway.SpendingTrends, gateway.Values{"p_months": months}, &out); err != nil {
		return nil, fmt.Errorf("loading spending trends: %w", err)
	}
	if out == nil {
		out = []model.MonthlyTrend{}
	}
	return out, nil
}

func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, financialYear int) ([]model.CategorySpending, error) {
	var out []model.CategorySpending
	params := gateway.Values{"p_financial_year": resolveFinancialYear(financialYear, s.now())}
	if err := s.gw.Call(ctx, gateway.CategorySpendingBreakdown, params, &out); err != nil {
		return nil, fmt.Errorf("loading category breakdown: %w", err)
	}
	if out == nil {
		out = []model.CategorySpending{}
	}
	return out, nil
}

func (s *AnalyticsService) SavingsRate(ctx context.Context, financialYear int) (*model.SavingsRateAnalysis, error) {
	var out model.SavingsRateAnalysis
	params := gateway.Values{"p_financial_year": resolveFinancialYear(financialYear, s.now())}
	if err := s.gw.Call(ctx, gateway.SavingsRateAnalysis, params, &out); err != nil {
		return nil, fmt.Errorf("loading savings rate analysis: %w", err)
	}
	if out.Months == nil {
		out.Months = []model.SavingsRatePoint{}
	}
	return &out, nil
}
