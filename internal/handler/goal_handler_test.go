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

// MockGoalService implements GoalServiceInterface for testing
type MockGoalService struct {
	mock.Mock
}

func (m *MockGoalService) goal(args mock.Arguments) (*model.GoalWithProgress, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GoalWithProgress), args.Error(1)
}

func (m *MockGoalService) Create(ctx context.Context, input service.CreateGoalInput) (*model.GoalWithProgress, error) {
	return m.goal(m.Called(ctx, input))
}

func (m *MockGoalService) List(ctx context.Context, status model.GoalStatus) ([]model.GoalWithProgress, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GoalWithProgress), args.Error(1)
}

func (m *MockGoalService) Get(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error) {
	return m.goal(m.Called(ctx, id))
}

func (m *MockGoalService) Update(ctx context.Context, id uuid.UUID, input service.UpdateGoalInput) (*model.GoalWithProgress, error) {
	return m.goal(m.Called(ctx, id, input))
}

func (m *MockGoalService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGoalService) AddProgress(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*model.GoalWithProgress, error) {
	return m.goal(m.Called(ctx, id, amount))
}

func (m *MockGoalService) Pause(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error) {
	return m.goal(m.Called(ctx, id))
}

func (m *MockGoalService) Activate(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error) {
	return m.goal(m.Called(ctx, id))
}

func (m *MockGoalService) Complete(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error) {
	return m.goal(m.Called(ctx, id))
}

func (m *MockGoalService) Cancel(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error) {
	return m.goal(m.Called(ctx, id))
}

func (m *MockGoalService) Summary(ctx context.Context) (model.GoalSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.GoalSummary), args.Error(1)
}

func (m *MockGoalService) Groups(ctx context.Context) (*service.GoalGroups, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GoalGroups), args.Error(1)
}

func (m *MockGoalService) ProgressSummary(ctx context.Context) (*model.GoalProgressSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GoalProgressSummary), args.Error(1)
}

func TestGoalHandler_Transitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		serve      func(*GoalHandler) http.HandlerFunc
		err        error
		wantStatus int
	}{
		{name: "pause", method: "Pause", serve: func(h *GoalHandler) http.HandlerFunc { return h.Pause }, wantStatus: http.StatusOK},
		{name: "activate", method: "Activate", serve: func(h *GoalHandler) http.HandlerFunc { return h.Activate }, wantStatus: http.StatusOK},
		{
			name:       "complete from paused",
			method:     "Complete",
			serve:      func(h *GoalHandler) http.HandlerFunc { return h.Complete },
			err:        apperror.Conflict("cannot move goal from paused to completed"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "cancel missing goal",
			method:     "Cancel",
			serve:      func(h *GoalHandler) http.HandlerFunc { return h.Cancel },
			err:        apperror.NotFound("goal"),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mockService := new(MockGoalService)
			h := NewGoalHandler(mockService)
			id := uuid.New()
			if tt.err != nil {
				mockService.On(tt.method, mock.Anything, id).Return(nil, tt.err)
			} else {
				mockService.On(tt.method, mock.Anything, id).Return(&model.GoalWithProgress{}, nil)
			}

			rr := httptest.NewRecorder()
			tt.serve(h)(rr, newRequest(http.MethodPost, "/api/goals/"+id.String(), nil, "id", id.String()))

			assert.Equal(t, tt.wantStatus, rr.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestGoalHandler_AddProgress(t *testing.T) {
	t.Parallel()

	t.Run("amount required", func(t *testing.T) {
		t.Parallel()
		mockService := new(MockGoalService)
		h := NewGoalHandler(mockService)
		id := uuid.New()

		rr := httptest.NewRecorder()
		h.AddProgress(rr, newRequest(http.MethodPost, "/", map[string]any{}, "id", id.String()))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "amount", decodeError(t, rr).Field)
		mockService.AssertNotCalled(t, "AddProgress", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("passes amount through", func(t *testing.T) {
		t.Parallel()
		mockService := new(MockGoalService)
		h := NewGoalHandler(mockService)
		id := uuid.New()
		mockService.On("AddProgress", mock.Anything, id, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(500))
		})).Return(&model.GoalWithProgress{}, nil)

		rr := httptest.NewRecorder()
		h.AddProgress(rr, newRequest(http.MethodPost, "/", map[string]any{"amount": 500}, "id", id.String()))

		require.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestGoalHandler_Summary(t *testing.T) {
	t.Parallel()
	mockService := new(MockGoalService)
	h := NewGoalHandler(mockService)

	mockService.On("Summary", mock.Anything).Return(model.GoalSummary{TotalGoals: 3, ActiveGoals: 2}, nil)
	mockService.On("Groups", mock.Anything).Return(&service.GoalGroups{}, nil)
	mockService.On("ProgressSummary", mock.Anything).Return(&model.GoalProgressSummary{TotalGoals: 3}, nil)

	rr := httptest.NewRecorder()
	h.Summary(rr, newRequest(http.MethodGet, "/api/goals/summary", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"activeGoals":2`)
	assert.Contains(t, rr.Body.String(), `"progress":{`)
}
