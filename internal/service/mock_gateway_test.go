package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
)

// mockGateway records gateway calls. The user comes from the context, like the
// real gateway; rows are handed back through fill.
type mockGateway struct {
	mock.Mock
}

var _ gateway.Gateway = (*mockGateway)(nil)

func (m *mockGateway) CurrentUser(ctx context.Context) (uuid.UUID, bool) {
	return gateway.UserFromContext(ctx)
}

func (m *mockGateway) Query(ctx context.Context, entity gateway.Entity, filter gateway.Filter, order []gateway.Order, dest any) error {
	return m.Called(ctx, entity, filter, order, dest).Error(0)
}

func (m *mockGateway) Insert(ctx context.Context, entity gateway.Entity, values gateway.Values, dest any) error {
	return m.Called(ctx, entity, values, dest).Error(0)
}

func (m *mockGateway) InsertMany(ctx context.Context, entity gateway.Entity, rows []gateway.Values, dest any) error {
	return m.Called(ctx, entity, rows, dest).Error(0)
}

func (m *mockGateway) Update(ctx context.Context, entity gateway.Entity, id uuid.UUID, patch gateway.Values, dest any) error {
	return m.Called(ctx, entity, id, patch, dest).Error(0)
}

func (m *mockGateway) Upsert(ctx context.Context, entity gateway.Entity, values gateway.Values, conflictKeys []string, dest any) error {
	return m.Called(ctx, entity, values, conflictKeys, dest).Error(0)
}

func (m *mockGateway) Delete(ctx context.Context, entity gateway.Entity, id uuid.UUID) error {
	return m.Called(ctx, entity, id).Error(0)
}

func (m *mockGateway) Call(ctx context.Context, proc gateway.Procedure, params gateway.Values, dest any) error {
	return m.Called(ctx, proc, params, dest).Error(0)
}

// fill copies v into the dest pointer found at argument position idx.
func fill(idx int, v any) func(mock.Arguments) {
	return func(args mock.Arguments) {
		reflect.ValueOf(args.Get(idx)).Elem().Set(reflect.ValueOf(v))
	}
}

// Argument positions of dest per method.
const (
	queryDest      = 4
	insertDest     = 3
	insertManyDest = 3
	updateDest     = 4
	upsertDest     = 4
	callDest       = 3
)

var fixedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func userContext(t *testing.T) (context.Context, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	return gateway.WithUser(context.Background(), id), id
}

// expectCategory makes the category with id visible to the current user.
func expectCategory(gw *mockGateway, id uuid.UUID) {
	gw.On("Query", mock.Anything, gateway.Categories, gateway.Where(gateway.Eq("id", id)).WithLimit(1), []gateway.Order(nil), mock.Anything).
		Return(nil).Run(fill(queryDest, []model.Category{{ID: id, Name: "Food", Type: model.CategoryTypeExpense}}))
}
