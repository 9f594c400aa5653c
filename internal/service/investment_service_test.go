package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/pkg/datetime"
)

func newTestInvestmentService() (*InvestmentService, *mockGateway) {
	gw := new(mockGateway)
	svc := NewInvestmentService(gw)
	svc.now = fixedClock
	return svc, gw
}

func TestInvestmentService_Create_CurrentValueDefaultsToInitial(t *testing.T) {
	t.Parallel()
	svc, gw := newTestInvestmentService()
	ctx, _ := userContext(t)
	initial := decimal.NewFromInt(50000)

	gw.On("Insert", ctx, gateway.Investments, mock.MatchedBy(func(v gateway.Values) bool {
		return v["current_value"] == initial &&
			v["purchase_date"] == datetime.NewDate(2024, 6, 15) &&
			v["is_active"] == true
	}), mock.Anything).Return(nil)

	_, err := svc.Create(ctx, CreateInvestmentInput{
		Name:          "HDFC FD",
		Type:          model.InvestmentTypeFixedDeposit,
		InitialAmount: initial,
	})

	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestInvestmentService_Create_Validation(t *testing.T) {
	t.Parallel()

	purchased := datetime.NewDate(2024, 1, 1)
	maturity := datetime.NewDate(2023, 1, 1)

	tests := []struct {
		name    string
		input   CreateInvestmentInput
		wantMsg string
	}{
		{
			name:    "missing fields",
			input:   CreateInvestmentInput{},
			wantMsg: "Name is required; Type is required; Initial amount must be greater than 0",
		},
		{
			name: "maturity before purchase",
			input: CreateInvestmentInput{
				Name:          "RD",
				Type:          model.InvestmentTypeRecurringDeposit,
				InitialAmount: decimal.NewFromInt(1000),
				PurchaseDate:  purchased,
				MaturityDate:  &maturity,
			},
			wantMsg: "Maturity date must not be before the purchase date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, gw := newTestInvestmentService()
			ctx, _ := userContext(t)

			_, err := svc.Create(ctx, tt.input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrValidation))
			assert.Equal(t, tt.wantMsg, apperror.GetMessage(err))
			assert.Len(t, gw.Calls, 0)
		})
	}
}

func TestInvestmentService_List_PortfolioShares(t *testing.T) {
	t.Parallel()
	svc, gw := newTestInvestmentService()
	ctx, _ := userContext(t)

	rows := []model.Investment{
		{Name: "Index fund", IsActive: true, InitialAmount: decimal.NewFromInt(50000), CurrentValue: decimal.NewFromInt(75000)},
		{Name: "PPF", IsActive: true, InitialAmount: decimal.NewFromInt(25000), CurrentValue: decimal.NewFromInt(25000)},
		{Name: "Sold stock", IsActive: false, InitialAmount: decimal.NewFromInt(10000), CurrentValue: decimal.NewFromInt(8000)},
	}
	gw.On("Query", ctx, gateway.Investments, gateway.Filter{}, gateway.OrderBy(gateway.Desc("current_value")), mock.Anything).
		Return(nil).Run(fill(queryDest, rows))

	got, err := svc.List(ctx, false)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 75.0, got[0].PortfolioPercentage, 0.001)
	assert.InDelta(t, 25.0, got[1].PortfolioPercentage, 0.001)
	assert.InDelta(t, 8.0, got[2].PortfolioPercentage, 0.001)
	assert.True(t, got[0].Returns.Equal(decimal.NewFromInt(25000)))
}

func TestInvestmentService_List_NoActiveInvestments(t *testing.T) {
	t.Parallel()
	svc, gw := newTestInvestmentService()
	ctx, _ := userContext(t)

	rows := []model.Investment{{Name: "Closed FD", CurrentValue: decimal.NewFromInt(1000)}}
	gw.On("Query", ctx, gateway.Investments, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(fill(queryDest, rows))

	got, err := svc.List(ctx, false)

	require.NoError(t, err)
	assert.Zero(t, got[0].PortfolioPercentage)
}

func TestInvestmentService_Performance(t *testing.T) {
	t.Parallel()
	svc, gw := newTestInvestmentService()
	ctx, _ := userContext(t)

	rows := []model.Investment{
		{IsActive: true, InitialAmount: decimal.NewFromInt(1000), CurrentValue: decimal.NewFromInt(1200)},
		{IsActive: true, InitialAmount: decimal.NewFromInt(1000), CurrentValue: decimal.NewFromInt(900)},
	}
	gw.On("Query", ctx, gateway.Investments, gateway.Where(gateway.Eq("is_active", true)), mock.Anything, mock.Anything).
		Return(nil).Run(fill(queryDest, rows))

	p, err := svc.Performance(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalInvestments)
	assert.Equal(t, 1, p.Profitable)
	assert.Equal(t, 1, p.Losing)
	assert.True(t, p.TotalReturns.Equal(decimal.NewFromInt(100)))
	assert.InDelta(t, 5.0, p.ReturnPercentage, 0.001)
}

func TestInvestmentService_UpdateValue(t *testing.T) {
	t.Parallel()
	svc, gw := newTestInvestmentService()
	ctx, _ := userContext(t)
	id := uuid.New()
	value := decimal.NewFromInt(1234)

	gw.On("Update", ctx, gateway.Investments, id, gateway.Values{"current_value": value}, mock.Anything).
		Return(nil).Run(fill(updateDest, model.Investment{ID: id, CurrentValue: value}))

	inv, err := svc.UpdateValue(ctx, id, value)

	require.NoError(t, err)
	assert.True(t, inv.CurrentValue.Equal(value))

	_, err = svc.UpdateValue(ctx, id, decimal.NewFromInt(-1))
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
