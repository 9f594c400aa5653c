package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
)

func newTestAnalyticsService() (*AnalyticsService, *mockGateway) {
	gw := new(mockGateway)
	svc := NewAnalyticsService(gw)
	svc.now = fixedClock
	return svc, gw
}

func TestAnalyticsService_Dashboard_DefaultsToCurrentYear(t *testing.T) {
	t.Parallel()
	svc, gw := newTestAnalyticsService()
	ctx, _ := userContext(t)

	gw.On("Call", ctx, gateway.DashboardAnalytics, gateway.Values{"p_financial_year": 2024}, mock.Anything).
		Return(nil).Run(fill(callDest, model.DashboardAnalytics{FinancialYear: 2024, TotalIncome: decimal.NewFromInt(90000)}))

	d, err := svc.Dashboard(ctx, 0)

	require.NoError(t, err)
	assert.Equal(t, 2024, d.FinancialYear)
	assert.True(t, d.TotalIncome.Equal(decimal.NewFromInt(90000)))
	gw.AssertExpectations(t)
}

func TestAnalyticsService_SpendingTrends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		months     int
		wantMonths int
		wantErr    bool
	}{
		{name: "default window", months: 0, wantMonths: 12},
		{name: "explicit window", months: 6, wantMonths: 6},
		{name: "negative", months: -3, wantErr: true},
		{name: "too long", months: 61, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, gw := newTestAnalyticsService()
			ctx, _ := userContext(t)
			if !tt.wantErr {
				gw.On("Call", ctx, gateway.SpendingTrends, gateway.Values{"p_months": tt.wantMonths}, mock.Anything).Return(nil)
			}

			got, err := svc.SpendingTrends(ctx, tt.months)

			if tt.wantErr {
				assert.True(t, errors.Is(err, apperror.ErrValidation))
				assert.Len(t, gw.Calls, 0)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			gw.AssertExpectations(t)
		})
	}
}

func TestAnalyticsService_CategoryBreakdown(t *testing.T) {
	t.Parallel()
	svc, gw := newTestAnalyticsService()
	ctx, _ := userContext(t)

	rows := []model.CategorySpending{
		{CategoryName: "Food", Total: decimal.NewFromInt(6000), Percentage: 60},
		{CategoryName: "Rent", Total: decimal.NewFromInt(4000), Percentage: 40},
	}
	gw.On("Call", ctx, gateway.CategorySpendingBreakdown, gateway.Values{"p_financial_year": 2023}, mock.Anything).
		Return(nil).Run(fill(callDest, rows))

	got, err := svc.CategoryBreakdown(ctx, 2023)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Food", got[0].CategoryName)
}

func TestAnalyticsService_SavingsRate_PropagatesGatewayError(t *testing.T) {
	t.Parallel()
	svc, gw := newTestAnalyticsService()
	ctx, _ := userContext(t)

	gwErr := &gateway.Error{Op: "call", Entity: string(gateway.SavingsRateAnalysis), Err: errors.New("timeout")}
	gw.On("Call", ctx, gateway.SavingsRateAnalysis, mock.Anything, mock.Anything).Return(gwErr)

	got, err := svc.SavingsRate(ctx, 0)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, gwErr)
}

func TestAnalyticsService_SavingsRate_EmptyMonths(t *testing.T) {
	t.Parallel()
	svc, gw := newTestAnalyticsService()
	ctx, _ := userContext(t)

	gw.On("Call", ctx, gateway.SavingsRateAnalysis, gateway.Values{"p_financial_year": 2024}, mock.Anything).Return(nil)

	got, err := svc.SavingsRate(ctx, 0)

	require.NoError(t, err)
	assert.NotNil(t, got.Months)
	assert.Empty(t, got.Months)
}
