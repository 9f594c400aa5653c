package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/fintrack/backend/internal/metrics"
)

// Readiness reports and waits for the end of start-up work.
type Readiness interface {
	ReadinessWaiter
	Ready() bool
}

// Services holds everything the routes call into.
type Services struct {
	Auth           AuthServiceInterface
	Tokens         TokenValidator
	Reference      ReferenceServiceInterface
	Transactions   TransactionServiceInterface
	Categories     CategoryServiceInterface
	PaymentMethods PaymentMethodServiceInterface
	Budgets        BudgetServiceInterface
	Goals          GoalServiceInterface
	Investments    InvestmentServiceInterface
	Savings        SavingsServiceInterface
	Analytics      AnalyticsServiceInterface
}

type RouterConfig struct {
	AllowedOrigins   []string
	AuthRPS          float64
	AuthBurst        int
	ReadinessTimeout time.Duration
	Readiness        Readiness
	Metrics          metrics.Recorder
	MetricsHandler   http.Handler // nil disables /metrics
}

// NewRouter wires the REST API.
func NewRouter(svc Services, cfg RouterConfig) http.Handler {
	rec := cfg.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}

	authHandler := NewAuthHandler(svc.Auth)
	referenceHandler := NewReferenceHandler(svc.Reference)
	transactionHandler := NewTransactionHandler(svc.Transactions)
	categoryHandler := NewCategoryHandler(svc.Categories, svc.PaymentMethods)
	budgetHandler := NewBudgetHandler(svc.Budgets)
	goalHandler := NewGoalHandler(svc.Goals)
	investmentHandler := NewInvestmentHandler(svc.Investments)
	savingsHandler := NewSavingsHandler(svc.Savings)
	analyticsHandler := NewAnalyticsHandler(svc.Analytics)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestContext)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware(rec))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Health check
	// @Summary Health check
	// @Description Check if the API is running
	// @Tags health
	// @Produce json
	// @Success 200 {object} map[string]string
	// @Router /health [get]
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Readiness != nil && !cfg.Readiness.Ready() {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		if cfg.Readiness != nil {
			r.Use(RequireReady(cfg.Readiness, cfg.ReadinessTimeout))
		}

		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(NewRateLimiter(cfg.AuthRPS, cfg.AuthBurst).Handler)
			r.Use(GuestOnly(svc.Tokens))
			r.Post("/api/auth/register", authHandler.Register)
			r.Post("/api/auth/login", authHandler.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(svc.Tokens))

			r.Get("/api/auth/me", authHandler.Me)
			r.Put("/api/auth/me", authHandler.UpdateMe)

			// Reference data and calculators
			r.Get("/api/reference", referenceHandler.Reference)
			r.Get("/api/financial-year", referenceHandler.FinancialYear)
			r.Post("/api/tax/calculate", referenceHandler.CalculateTax)
			r.Get("/api/tax/slabs", referenceHandler.TaxSlabs)

			// Transactions
			r.Get("/api/transactions", transactionHandler.List)
			r.Post("/api/transactions", transactionHandler.Create)
			r.Get("/api/transactions/totals", transactionHandler.Totals)
			r.Get("/api/transactions/{id}", transactionHandler.Get)
			r.Put("/api/transactions/{id}", transactionHandler.Update)
			r.Delete("/api/transactions/{id}", transactionHandler.Delete)

			// Categories and payment methods
			r.Get("/api/categories", categoryHandler.List)
			r.Post("/api/categories", categoryHandler.Create)
			r.Put("/api/categories/{id}", categoryHandler.Update)
			r.Delete("/api/categories/{id}", categoryHandler.Delete)
			r.Get("/api/payment-methods", categoryHandler.ListPaymentMethods)
			r.Post("/api/payment-methods", categoryHandler.CreatePaymentMethod)

			// Budgets
			r.Get("/api/budgets/monthly", budgetHandler.ListMonthly)
			r.Put("/api/budgets/monthly", budgetHandler.SetMonthly)
			r.Put("/api/budgets/monthly/{id}", budgetHandler.UpdateMonthly)
			r.Delete("/api/budgets/monthly/{id}", budgetHandler.DeleteMonthly)
			r.Get("/api/budgets/annual", budgetHandler.ListAnnual)
			r.Put("/api/budgets/annual", budgetHandler.SetAnnual)
			r.Delete("/api/budgets/annual/{id}", budgetHandler.DeleteAnnual)
			r.Get("/api/budgets/performance", budgetHandler.Performance)
			r.Put("/api/budgets/performance", budgetHandler.RecordPerformance)
			r.Get("/api/budgets/totals", budgetHandler.Totals)
			r.Get("/api/budgets/summary", budgetHandler.Summary)
			r.Get("/api/budgets/analysis/{categoryId}", budgetHandler.CategoryAnalysis)
			r.Get("/api/budgets/chart", budgetHandler.Chart)

			// Goals
			r.Get("/api/goals", goalHandler.List)
			r.Post("/api/goals", goalHandler.Create)
			r.Get("/api/goals/summary", goalHandler.Summary)
			r.Get("/api/goals/{id}", goalHandler.Get)
			r.Put("/api/goals/{id}", goalHandler.Update)
			r.Delete("/api/goals/{id}", goalHandler.Delete)
			r.Post("/api/goals/{id}/progress", goalHandler.AddProgress)
			r.Post("/api/goals/{id}/pause", goalHandler.Pause)
			r.Post("/api/goals/{id}/activate", goalHandler.Activate)
			r.Post("/api/goals/{id}/complete", goalHandler.Complete)
			r.Post("/api/goals/{id}/cancel", goalHandler.Cancel)

			// Investments
			r.Get("/api/investments", investmentHandler.List)
			r.Post("/api/investments", investmentHandler.Create)
			r.Get("/api/investments/performance", investmentHandler.Performance)
			r.Get("/api/investments/{id}", investmentHandler.Get)
			r.Put("/api/investments/{id}", investmentHandler.Update)
			r.Delete("/api/investments/{id}", investmentHandler.Delete)
			r.Put("/api/investments/{id}/value", investmentHandler.UpdateValue)

			// Savings recommendations
			r.Post("/api/savings/allocation", savingsHandler.Allocation)
			r.Post("/api/savings/generate", savingsHandler.Generate)
			r.Get("/api/savings/recommendations", savingsHandler.List)
			r.Delete("/api/savings/recommendations/{id}", savingsHandler.Delete)
			r.Post("/api/savings/recommendations/{id}/accept", savingsHandler.Accept)
			r.Post("/api/savings/recommendations/{id}/complete", savingsHandler.Complete)
			r.Post("/api/savings/recommendations/{id}/feedback", savingsHandler.Feedback)

			// Analytics
			r.Get("/api/analytics/dashboard", analyticsHandler.Dashboard)
			r.Get("/api/analytics/trends", analyticsHandler.Trends)
			r.Get("/api/analytics/categories", analyticsHandler.Categories)
			r.Get("/api/analytics/savings-rate", analyticsHandler.SavingsRate)
		})
	})

	return r
}
