package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

// MockCategoryService implements CategoryServiceInterface for testing
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, catType model.CategoryType) ([]model.Category, error) {
	args := m.Called(ctx, catType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) ListDefaults(ctx context.Context, catType model.CategoryType) ([]model.Category, error) {
	args := m.Called(ctx, catType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, input service.CreateCategoryInput) (*model.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id uuid.UUID, input service.UpdateCategoryInput) (*model.Category, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestCategoryHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("defaults of one type", func(t *testing.T) {
		t.Parallel()
		mockService := new(MockCategoryService)
		h := NewCategoryHandler(mockService, nil)
		mockService.On("ListDefaults", mock.Anything, model.CategoryTypeExpense).
			Return([]model.Category{{Name: "Groceries"}}, nil)

		rr := httptest.NewRecorder()
		h.List(rr, newRequest(http.MethodGet, "/api/categories?defaults=true&type=expense", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Groceries")
		mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("all", func(t *testing.T) {
		t.Parallel()
		mockService := new(MockCategoryService)
		h := NewCategoryHandler(mockService, nil)
		mockService.On("List", mock.Anything, model.CategoryType("")).Return([]model.Category{}, nil)

		rr := httptest.NewRecorder()
		h.List(rr, newRequest(http.MethodGet, "/api/categories", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestCategoryHandler_Delete_InUse(t *testing.T) {
	t.Parallel()
	mockService := new(MockCategoryService)
	h := NewCategoryHandler(mockService, nil)
	id := uuid.New()
	mockService.On("Delete", mock.Anything, id).Return(apperror.Conflict("category is used by existing transactions"))

	rr := httptest.NewRecorder()
	h.Delete(rr, newRequest(http.MethodDelete, "/", nil, "id", id.String()))

	assert.Equal(t, http.StatusConflict, rr.Code)
}
