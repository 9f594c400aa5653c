package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

// MockInvestmentService implements InvestmentServiceInterface for testing
type MockInvestmentService struct {
	mock.Mock
}

func (m *MockInvestmentService) inv(args mock.Arguments) (*model.Investment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Investment), args.Error(1)
}

func (m *MockInvestmentService) Create(ctx context.Context, input service.CreateInvestmentInput) (*model.Investment, error) {
	return m.inv(m.Called(ctx, input))
}

func (m *MockInvestmentService) List(ctx context.Context, activeOnly bool) ([]model.InvestmentWithPortfolio, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InvestmentWithPortfolio), args.Error(1)
}

func (m *MockInvestmentService) Get(ctx context.Context, id uuid.UUID) (*model.Investment, error) {
	return m.inv(m.Called(ctx, id))
}

func (m *MockInvestmentService) Update(ctx context.Context, id uuid.UUID, input service.UpdateInvestmentInput) (*model.Investment, error) {
	return m.inv(m.Called(ctx, id, input))
}

func (m *MockInvestmentService) UpdateValue(ctx context.Context, id uuid.UUID, value decimal.Decimal) (*model.Investment, error) {
	return m.inv(m.Called(ctx, id, value))
}

func (m *MockInvestmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInvestmentService) Performance(ctx context.Context) (model.InvestmentPerformance, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.InvestmentPerformance), args.Error(1)
}

func (m *MockInvestmentService) ByType(ctx context.Context) (map[model.InvestmentType][]model.Investment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.InvestmentType][]model.Investment), args.Error(1)
}

func (m *MockInvestmentService) Summary(ctx context.Context) (*model.InvestmentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvestmentSummary), args.Error(1)
}

func (m *MockInvestmentService) Returns(ctx context.Context) ([]model.InvestmentReturn, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InvestmentReturn), args.Error(1)
}

func TestInvestmentHandler_List_ActiveOnly(t *testing.T) {
	t.Parallel()
	mockService := new(MockInvestmentService)
	h := NewInvestmentHandler(mockService)
	mockService.On("List", mock.Anything, true).Return([]model.InvestmentWithPortfolio{}, nil)

	rr := httptest.NewRecorder()
	h.List(rr, newRequest(http.MethodGet, "/api/investments?active=true", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestInvestmentHandler_UpdateValue(t *testing.T) {
	t.Parallel()
	id := uuid.New()

	tests := []struct {
		name       string
		body       any
		setup      func(m *MockInvestmentService)
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing value",
			body:       map[string]any{},
			wantStatus: http.StatusBadRequest,
			wantError:  "Current value is required",
		},
		{
			name: "updated",
			body: map[string]any{"currentValue": "125000.50"},
			setup: func(m *MockInvestmentService) {
				m.On("UpdateValue", mock.Anything, id, mock.MatchedBy(func(v decimal.Decimal) bool {
					return v.Equal(decimal.RequireFromString("125000.50"))
				})).Return(&model.Investment{ID: id}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			body: map[string]any{"currentValue": 10},
			setup: func(m *MockInvestmentService) {
				m.On("UpdateValue", mock.Anything, id, mock.Anything).Return(nil, apperror.NotFound("investment"))
			},
			wantStatus: http.StatusNotFound,
			wantError:  "investment not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mockService := new(MockInvestmentService)
			if tt.setup != nil {
				tt.setup(mockService)
			}
			h := NewInvestmentHandler(mockService)

			rr := httptest.NewRecorder()
			h.UpdateValue(rr, newRequest(http.MethodPut, "/", tt.body, "id", id.String()))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rr).Error)
			}
		})
	}
}
