package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
)

type recordedOp struct {
	entity, op string
	failed     bool
}

type fakeRecorder struct {
	mu  sync.Mutex
	ops []recordedOp
}

func (f *fakeRecorder) ObserveGateway(entity, op string, _ time.Duration, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, recordedOp{entity: entity, op: op, failed: err != nil})
}
func (f *fakeRecorder) ObserveHTTP(string, string, int, time.Duration) {}
func (f *fakeRecorder) ObserveJob(string, time.Duration, error)        {}
func (f *fakeRecorder) RecommendationsPurged(int64)                    {}

func newTestGateway(t *testing.T) (*PostgresGateway, sqlmock.Sqlmock, context.Context, uuid.UUID, *fakeRecorder) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	rec := &fakeRecorder{}
	gw := NewPostgresGateway(sqlx.NewDb(mockDB, "sqlmock"), rec)
	userID := uuid.New()
	return gw, mock, gateway.WithUser(context.Background(), userID), userID, rec
}

func sqlText(s string) string {
	return "^" + regexp.QuoteMeta(s) + "$"
}

func TestPostgresGateway_RequiresUser(t *testing.T) {
	t.Parallel()

	gw, mock, _, _, _ := newTestGateway(t)

	var txs []model.Transaction
	err := gw.Query(context.Background(), gateway.Transactions, gateway.Filter{}, nil, &txs)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotAuthenticated))
	var gwErr *gateway.Error
	assert.False(t, errors.As(err, &gwErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_QueryScopesToUser(t *testing.T) {
	t.Parallel()

	gw, mock, ctx, userID, rec := newTestGateway(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "amount", "type", "date"}).
		AddRow(uuid.New(), userID, "Groceries", "1250.50", "expense", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))

	mock.ExpectQuery(sqlText(
		"SELECT * FROM transactions WHERE user_id = $1 AND type = $2 AND date >= $3 AND tags @> $4 ORDER BY date DESC LIMIT 5",
	)).
		WithArgs(userID, "expense", "2024-04-01", sqlmock.AnyArg()).
		WillReturnRows(rows)

	filter := gateway.Where(
		gateway.Eq("type", "expense"),
		gateway.Gte("date", "2024-04-01"),
		gateway.Contains("tags", []string{"food"}),
	).WithLimit(5)

	var txs []model.Transaction
	err := gw.Query(ctx, gateway.Transactions, filter, gateway.OrderBy(gateway.Desc("date")), &txs)

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Groceries", txs[0].Title)
	assert.True(t, decimal.RequireFromString("1250.50").Equal(txs[0].Amount))
	assert.Equal(t, "2024-05-02", txs[0].Date.String())
	assert.Equal(t, []recordedOp{{entity: "transactions", op: "query"}}, rec.ops)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_QuerySharedDefaults(t *testing.T) {
	t.Parallel()

	gw, mock, ctx, userID, _ := newTestGateway(t)

	mock.ExpectQuery(sqlText(
		"SELECT * FROM categories WHERE (is_default = true OR user_id = $1) AND (type = $2 OR is_active = $3) ORDER BY is_default DESC, name ASC",
	)).
		WithArgs(userID, "expense", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	filter := gateway.Where(gateway.Or(gateway.Eq("type", "expense"), gateway.Eq("is_active", true)))

	var cats []model.Category
	err := gw.Query(ctx, gateway.Categories, filter, gateway.OrderBy(gateway.Desc("is_default"), gateway.Asc("name")), &cats)

	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_QueryRejectsUnknownField(t *testing.T) {
	t.Parallel()

	gw, mock, ctx, _, rec := newTestGateway(t)

	var txs []model.Transaction
	err := gw.Query(ctx, gateway.Transactions, gateway.Where(gateway.Eq("amount; DROP TABLE users", 1)), nil, &txs)

	require.Error(t, err)
	var gwErr *gateway.Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "query", gwErr.Op)
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))
	assert.True(t, rec.ops[0].failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_Insert(t *testing.T) {
	t.Parallel()

	gw, mock, ctx, userID, _ := newTestGateway(t)

	goalID := uuid.New()
	mock.ExpectQuery(sqlText(
		"INSERT INTO financial_goals (id, target_amount, title, user_id) VALUES ($1, $2, $3, $4) RETURNING *",
	)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Car", userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "target_amount"}).
			AddRow(goalID, userID, "Car", "500000"))

	var goal model.FinancialGoal
	err := gw.Insert(ctx, gateway.FinancialGoals, gateway.Values{
		"title":         "Car",
		"target_amount": decimal.NewFromInt(500000),
	}, &goal)

	require.NoError(t, err)
	assert.Equal(t, goalID, goal.ID)
	assert.Equal(t, userID, goal.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_InsertCategoryIsNeverDefault(t *testing.T) {
	t.Parallel()

	gw, mock, ctx, userID, _ := newTestGateway(t)

	mock.ExpectQuery(sqlText(
		"INSERT INTO categories (id, is_default, name, type, user_id) VALUES ($1, $2, $3, $4, $5) RETURNING *",
	)).
		WithArgs(sqlmock.AnyArg(), false, "Pets", "expense", userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_default"}).AddRow(uuid.New(), "Pets", false))

	var cat model.Category
	err := gw.Insert(ctx, gateway.Categories, gateway.Values{
		"name":       "Pets",
		"type":       "expense",
		"is_default": true,
		"user_id":    uuid.New(),
	}, &cat)

	require.NoError(t, err)
	assert.False(t, cat.IsDefault)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_InsertDuplicateIsConflict(t *testing.T) {
	t.Parallel()

	gw, mock, ctx, _, _ := newTestGateway(t)

	mock.ExpectQuery(`INSERT INTO payment_methods`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	var pm model.PaymentMethod
	err := gw.Insert(ctx, gateway.PaymentMethods, gateway.Values{"name": "UPI"}, &pm)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	assert.Equal(t, 409, apperror.GetStatusCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_InsertMany(t *testing.T) {
	t.Parallel()

	t.Run("single statement in a transaction", func(t *testing.T) {
		t.Parallel()

		gw, mock, ctx, userID, _ := newTestGateway(t)

		mock.ExpectBegin()
		mock.ExpectQuery(sqlText(
			"INSERT INTO savings_recommendations (id, priority, title, user_id) VALUES ($1, $2, $3, $4), ($5, DEFAULT, $6, $7) RETURNING *",
		)).
			WithArgs(sqlmock.AnyArg(), "high", "A", userID, sqlmock.AnyArg(), "B", userID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
				AddRow(uuid.New(), "A").
				AddRow(uuid.New(), "B"))
		mock.ExpectCommit()

		var recs []model.SavingsRecommendation
		err := gw.InsertMany(ctx, gateway.SavingsRecommendations, []gateway.Values{
			{"title": "A", "priority": "high"},
			{"title": "B"},
		}, &recs)

		require.NoError(t, err)
		assert.Len(t, recs, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure rolls back", func(t *testing.T) {
		t.Parallel()

		gw, mock, ctx, _, _ := newTestGateway(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO savings_recommendations`).
			WillReturnError(&pq.Error{Code: "23514", Message: "violates check constraint"})
		mock.ExpectRollback()

		var recs []model.SavingsRecommendation
		err := gw.InsertMany(ctx, gateway.SavingsRecommendations, []gateway.Values{{"title": "A"}}, &recs)

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		gw, mock, ctx, _, _ := newTestGateway(t)

		var recs []model.SavingsRecommendation
		require.NoError(t, gw.InsertMany(ctx, gateway.SavingsRecommendations, nil, &recs))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresGateway_Update(t *testing.T) {
	t.Parallel()

	t.Run("patches own row", func(t *testing.T) {
		t.Parallel()

		gw, mock, ctx, userID, _ := newTestGateway(t)
		id := uuid.New()

		mock.ExpectQuery(sqlText(
			"UPDATE financial_goals SET status = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3 RETURNING *",
		)).
			WithArgs("paused", id, userID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(id, "paused"))

		var goal model.FinancialGoal
		err := gw.Update(ctx, gateway.FinancialGoals, id, gateway.Values{"status": "paused"}, &goal)

		require.NoError(t, err)
		assert.Equal(t, model.GoalStatusPaused, goal.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		t.Parallel()

		gw, mock, ctx, _, _ := newTestGateway(t)

		mock.ExpectQuery(`UPDATE financial_goals`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		var goal model.FinancialGoal
		err := gw.Update(ctx, gateway.FinancialGoals, uuid.New(), gateway.Values{"status": "paused"}, &goal)

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ownership columns are immutable", func(t *testing.T) {
		t.Parallel()

		gw, mock, ctx, _, _ := newTestGateway(t)

		var goal model.FinancialGoal
		err := gw.Update(ctx, gateway.FinancialGoals, uuid.New(), gateway.Values{"user_id": uuid.New()}, &goal)

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty patch", func(t *testing.T) {
		t.Parallel()

		gw, _, ctx, _, _ := newTestGateway(t)

		var goal model.FinancialGoal
		err := gw.Update(ctx, gateway.FinancialGoals, uuid.New(), gateway.Values{}, &goal)
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
	})
}

func TestPostgresGateway_Upsert(t *testing.T) {
	t.Parallel()

	gw, mock, ctx, userID, _ := newTestGateway(t)
	categoryID := uuid.New()

	mock.ExpectQuery(sqlText(
		"INSERT INTO monthly_budgets (budget_amount, category_id, financial_year, id, month, user_id) " +
			"VALUES ($1, $2, $3, $4, $5, $6) " +
			"ON CONFLICT (user_id, category_id, financial_year, month) " +
			"DO UPDATE SET budget_amount = EXCLUDED.budget_amount, updated_at = NOW() " +
			"WHERE monthly_budgets.user_id = EXCLUDED.user_id RETURNING *",
	)).
		WithArgs(sqlmock.AnyArg(), categoryID, 2024, sqlmock.AnyArg(), 5, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "financial_year", "month", "budget_amount"}).
			AddRow(uuid.New(), categoryID, 2024, 5, "8000"))

	var budget model.MonthlyBudget
	err := gw.Upsert(ctx, gateway.MonthlyBudgets, gateway.Values{
		"category_id":    categoryID,
		"financial_year": 2024,
		"month":          5,
		"budget_amount":  decimal.NewFromInt(8000),
	}, []string{"user_id", "category_id", "financial_year", "month"}, &budget)

	require.NoError(t, err)
	assert.Equal(t, 5, budget.Month)
	assert.True(t, decimal.NewFromInt(8000).Equal(budget.BudgetAmount))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "not found", affected: 0, wantErr: apperror.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gw, mock, ctx, userID, _ := newTestGateway(t)
			id := uuid.New()

			mock.ExpectExec(sqlText("DELETE FROM investments WHERE id = $1 AND user_id = $2")).
				WithArgs(id, userID).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := gw.Delete(ctx, gateway.Investments, id)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresGateway_Call(t *testing.T) {
	t.Parallel()

	t.Run("decodes json result", func(t *testing.T) {
		t.Parallel()

		gw, mock, ctx, userID, _ := newTestGateway(t)

		mock.ExpectQuery(sqlText("SELECT get_spending_trends(p_user_id => $1, p_months => $2)")).
			WithArgs(userID, 6).
			WillReturnRows(sqlmock.NewRows([]string{"get_spending_trends"}).
				AddRow([]byte(`[{"month":"2024-05","income":50000,"expenses":32000}]`)))

		var trends []map[string]any
		err := gw.Call(ctx, gateway.SpendingTrends, gateway.Values{"p_months": 6}, &trends)

		require.NoError(t, err)
		require.Len(t, trends, 1)
		assert.Equal(t, "2024-05", trends[0]["month"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null result leaves dest untouched", func(t *testing.T) {
		t.Parallel()

		gw, mock, ctx, _, _ := newTestGateway(t)

		mock.ExpectQuery(`SELECT get_goal_progress_summary`).
			WillReturnRows(sqlmock.NewRows([]string{"get_goal_progress_summary"}).AddRow(nil))

		var out []map[string]any
		require.NoError(t, gw.Call(ctx, gateway.GoalProgressSummary, nil, &out))
		assert.Nil(t, out)
	})

	t.Run("session user cannot be overridden", func(t *testing.T) {
		t.Parallel()

		gw, mock, ctx, _, _ := newTestGateway(t)

		var out map[string]any
		err := gw.Call(ctx, gateway.DashboardAnalytics, gateway.Values{"p_user_id": uuid.New()}, &out)

		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown procedure", func(t *testing.T) {
		t.Parallel()

		gw, _, ctx, _, _ := newTestGateway(t)

		err := gw.Call(ctx, gateway.Procedure("pg_sleep"), nil, nil)
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
	})

	t.Run("driver error stays raw inside gateway error", func(t *testing.T) {
		t.Parallel()

		gw, mock, ctx, _, _ := newTestGateway(t)
		boom := errors.New("connection reset")

		mock.ExpectQuery(`SELECT get_dashboard_analytics`).WillReturnError(boom)

		var out map[string]any
		err := gw.Call(ctx, gateway.DashboardAnalytics, nil, &out)

		var gwErr *gateway.Error
		require.True(t, errors.As(err, &gwErr))
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 500, apperror.GetStatusCode(err))
	})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(classify("x", sql.ErrNoRows), apperror.ErrNotFound))
	assert.True(t, errors.Is(classify("x", &pq.Error{Code: "23503"}), apperror.ErrConflict))
	assert.True(t, errors.Is(classify("x", &pq.Error{Code: "22P02"}), apperror.ErrBadRequest))

	other := &pq.Error{Code: "40001"}
	assert.Same(t, other, classify("x", other))
}
