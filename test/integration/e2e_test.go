//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fintrack/backend/internal/database"
	"github.com/fintrack/backend/internal/handler"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/readiness"
	"github.com/fintrack/backend/internal/repository"
	"github.com/fintrack/backend/internal/service"
	"github.com/fintrack/backend/pkg/datetime"
)

// TestEnv holds the test environment
type TestEnv struct {
	DB        *sqlx.DB
	Container testcontainers.Container
	Server    *httptest.Server
	Savings   *service.SavingsService
}

// SetupTestEnv starts PostgreSQL, applies the migrations, seeds the reference
// data and serves the full router.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("fintrack"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.Connect("postgres", connStr)
	require.NoError(t, err)

	require.NoError(t, database.NewMigrationRunner(db.DB, nil).RunMigrations())

	gw := repository.NewPostgresGateway(db, nil)
	maintenance := repository.NewMaintenanceRepository(db)
	users := service.NewUserService(repository.NewUserRepository(db), "integration-secret", time.Hour)
	reference := service.NewReferenceService(maintenance)
	savings := service.NewSavingsService(gw, maintenance, nil, 0)

	gate := readiness.NewGate()
	gate.Run(ctx, reference.SeedDefaults)
	require.True(t, gate.Ready())

	router := handler.NewRouter(handler.Services{
		Auth:           users,
		Tokens:         users,
		Reference:      reference,
		Transactions:   service.NewTransactionService(gw),
		Categories:     service.NewCategoryService(gw),
		PaymentMethods: service.NewPaymentMethodService(gw),
		Budgets:        service.NewBudgetService(gw),
		Goals:          service.NewGoalService(gw),
		Investments:    service.NewInvestmentService(gw),
		Savings:        savings,
		Analytics:      service.NewAnalyticsService(gw),
	}, handler.RouterConfig{
		AuthRPS:          100,
		AuthBurst:        100,
		ReadinessTimeout: time.Second,
		Readiness:        gate,
	})

	env := &TestEnv{
		DB:        db,
		Container: pgContainer,
		Server:    httptest.NewServer(router),
		Savings:   savings,
	}
	t.Cleanup(func() { env.Cleanup(t) })
	return env
}

// Cleanup tears down the test environment
func (e *TestEnv) Cleanup(t *testing.T) {
	e.Server.Close()
	_ = e.DB.Close()
	if err := e.Container.Terminate(context.Background()); err != nil {
		t.Logf("Failed to terminate container: %v", err)
	}
}

// Request sends a JSON request, authenticated when token is not empty, and
// decodes the response into out when out is not nil.
func (e *TestEnv) Request(t *testing.T, token, method, path string, body, out any) int {
	t.Helper()
	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequest(method, e.Server.URL+path, &reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// Register creates a fresh user and returns its token.
func (e *TestEnv) Register(t *testing.T) string {
	t.Helper()
	var auth service.AuthResponse
	status := e.Request(t, "", http.MethodPost, "/api/auth/register", map[string]string{
		"email":    gofakeit.Email(),
		"password": gofakeit.Password(true, true, true, false, false, 12),
		"name":     gofakeit.Name(),
	}, &auth)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func (e *TestEnv) category(t *testing.T, token string, catType model.CategoryType) model.Category {
	t.Helper()
	var cats []model.Category
	require.Equal(t, http.StatusOK, e.Request(t, token, http.MethodGet, "/api/categories?defaults=true&type="+string(catType), nil, &cats))
	require.NotEmpty(t, cats)
	return cats[0]
}

// ============ E2E Tests ============

func TestE2E_AuthFlow(t *testing.T) {
	env := SetupTestEnv(t)

	email := gofakeit.Email()
	password := "correct-horse-battery"

	var registered service.AuthResponse
	require.Equal(t, http.StatusCreated, env.Request(t, "", http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": password, "name": "Priya"}, &registered))

	assert.Equal(t, http.StatusConflict, env.Request(t, "", http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": password, "name": "Priya"}, nil))

	assert.Equal(t, http.StatusUnauthorized, env.Request(t, "", http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": "wrong-password"}, nil))

	var login service.AuthResponse
	require.Equal(t, http.StatusOK, env.Request(t, "", http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &login))

	var me model.User
	require.Equal(t, http.StatusOK, env.Request(t, login.Token, http.MethodGet, "/api/auth/me", nil, &me))
	assert.Equal(t, registered.User.ID, me.ID)

	assert.Equal(t, http.StatusForbidden, env.Request(t, login.Token, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, nil))
	assert.Equal(t, http.StatusUnauthorized, env.Request(t, "", http.MethodGet, "/api/transactions", nil, nil))
}

func TestE2E_TransactionsAreScopedToTheirOwner(t *testing.T) {
	env := SetupTestEnv(t)
	alice := env.Register(t)
	bob := env.Register(t)

	salary := env.category(t, alice, model.CategoryTypeIncome)
	food := env.category(t, alice, model.CategoryTypeExpense)
	today := datetime.Today()

	var income model.Transaction
	require.Equal(t, http.StatusCreated, env.Request(t, alice, http.MethodPost, "/api/transactions", map[string]any{
		"amount":        "85000",
		"categoryId":    salary.ID,
		"paymentMethod": "Net Banking",
		"type":          "income",
		"date":          today,
	}, &income))
	require.Equal(t, http.StatusCreated, env.Request(t, alice, http.MethodPost, "/api/transactions", map[string]any{
		"amount":        "1250.50",
		"categoryId":    food.ID,
		"paymentMethod": "UPI",
		"type":          "expense",
		"date":          today,
	}, nil))

	var totals model.TransactionTotals
	require.Equal(t, http.StatusOK, env.Request(t, alice, http.MethodGet, "/api/transactions/totals", nil, &totals))
	assert.Equal(t, 2, totals.Count)
	assert.True(t, totals.Balance.Equal(decimal.RequireFromString("83749.50")), totals.Balance.String())

	var bobs []model.Transaction
	require.Equal(t, http.StatusOK, env.Request(t, bob, http.MethodGet, "/api/transactions", nil, &bobs))
	assert.Empty(t, bobs)
	assert.Equal(t, http.StatusNotFound, env.Request(t, bob, http.MethodGet, "/api/transactions/"+income.ID.String(), nil, nil))
	assert.Equal(t, http.StatusNotFound, env.Request(t, bob, http.MethodDelete, "/api/transactions/"+income.ID.String(), nil, nil))

	assert.Equal(t, http.StatusNoContent, env.Request(t, alice, http.MethodDelete, "/api/transactions/"+income.ID.String(), nil, nil))

	// Bob's private category is invisible to Alice and stays deletable by Bob.
	var hobby model.Category
	require.Equal(t, http.StatusCreated, env.Request(t, bob, http.MethodPost, "/api/categories",
		map[string]string{"name": "Pottery", "type": "expense"}, &hobby))
	assert.Equal(t, http.StatusBadRequest, env.Request(t, alice, http.MethodPost, "/api/transactions", map[string]any{
		"amount":        "400",
		"categoryId":    hobby.ID,
		"paymentMethod": "Cash",
		"date":          today,
	}, nil))
	assert.Equal(t, http.StatusNoContent, env.Request(t, bob, http.MethodDelete, "/api/categories/"+hobby.ID.String(), nil, nil))
}

func TestE2E_GoalLifecycle(t *testing.T) {
	env := SetupTestEnv(t)
	token := env.Register(t)

	var goal model.GoalWithProgress
	require.Equal(t, http.StatusCreated, env.Request(t, token, http.MethodPost, "/api/goals", map[string]any{
		"title":        "New laptop",
		"targetAmount": "120000",
		"targetDate":   datetime.DateOf(time.Now().AddDate(0, 6, 0)),
		"priority":     "high",
	}, &goal))
	path := "/api/goals/" + goal.ID.String()

	require.Equal(t, http.StatusOK, env.Request(t, token, http.MethodPost, path+"/progress", map[string]any{"amount": "30000"}, &goal))
	assert.InDelta(t, 25.0, goal.ProgressPercentage, 0.01)

	require.Equal(t, http.StatusOK, env.Request(t, token, http.MethodPost, path+"/pause", nil, &goal))
	assert.Equal(t, model.GoalStatusPaused, goal.Status)
	assert.Equal(t, http.StatusConflict, env.Request(t, token, http.MethodPost, path+"/complete", nil, nil))

	require.Equal(t, http.StatusOK, env.Request(t, token, http.MethodPost, path+"/activate", nil, &goal))
	require.Equal(t, http.StatusOK, env.Request(t, token, http.MethodPost, path+"/complete", nil, &goal))
	assert.Equal(t, model.GoalStatusCompleted, goal.Status)
}

func TestE2E_SavingsRecommendations(t *testing.T) {
	env := SetupTestEnv(t)
	token := env.Register(t)

	var generated service.GeneratedRecommendations
	require.Equal(t, http.StatusCreated, env.Request(t, token, http.MethodPost, "/api/savings/generate", map[string]any{
		"monthlyIncome":   "100000",
		"monthlyExpenses": "60000",
		"riskProfile":     "conservative",
	}, &generated))
	require.NotEmpty(t, generated.Recommendations)

	sum := decimal.Zero
	for _, r := range generated.Recommendations {
		sum = sum.Add(r.RecommendedAmount)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(40000)), sum.String())

	rec := generated.Recommendations[0]
	path := "/api/savings/recommendations/" + rec.ID.String()
	assert.Equal(t, http.StatusConflict, env.Request(t, token, http.MethodPost, path+"/complete", nil, nil))
	require.Equal(t, http.StatusOK, env.Request(t, token, http.MethodPost, path+"/accept", nil, &rec))
	require.Equal(t, http.StatusOK, env.Request(t, token, http.MethodPost, path+"/complete", nil, &rec))
	assert.True(t, rec.IsCompleted)

	// Nothing has expired yet.
	n, err := env.Savings.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestE2E_Analytics(t *testing.T) {
	env := SetupTestEnv(t)
	token := env.Register(t)
	salary := env.category(t, token, model.CategoryTypeIncome)

	require.Equal(t, http.StatusCreated, env.Request(t, token, http.MethodPost, "/api/transactions", map[string]any{
		"amount":        "50000",
		"categoryId":    salary.ID,
		"paymentMethod": "Net Banking",
		"type":          "income",
		"date":          datetime.Today(),
	}, nil))

	var dashboard model.DashboardAnalytics
	require.Equal(t, http.StatusOK, env.Request(t, token, http.MethodGet, "/api/analytics/dashboard", nil, &dashboard))
	assert.Equal(t, datetime.CurrentFinancialYear(), dashboard.FinancialYear)
	assert.True(t, dashboard.TotalIncome.Equal(decimal.NewFromInt(50000)), dashboard.TotalIncome.String())

	var trends []model.MonthlyTrend
	require.Equal(t, http.StatusOK, env.Request(t, token, http.MethodGet, "/api/analytics/trends?months=3", nil, &trends))
	assert.Equal(t, http.StatusBadRequest, env.Request(t, token, http.MethodGet, "/api/analytics/trends?months=100", nil, nil))
}

func TestE2E_TaxCalculation(t *testing.T) {
	env := SetupTestEnv(t)
	token := env.Register(t)

	var result map[string]any
	require.Equal(t, http.StatusOK, env.Request(t, token, http.MethodPost, "/api/tax/calculate", map[string]any{
		"annualIncome": "1200000",
		"regime":       "new",
	}, &result))
	assert.NotEmpty(t, result)

	assert.Equal(t, http.StatusBadRequest, env.Request(t, token, http.MethodPost, "/api/tax/calculate", map[string]any{}, nil))
}
