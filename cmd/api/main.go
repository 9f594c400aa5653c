package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/fintrack/backend/docs"
	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/internal/database"
	"github.com/fintrack/backend/internal/handler"
	"github.com/fintrack/backend/internal/logger"
	"github.com/fintrack/backend/internal/metrics"
	"github.com/fintrack/backend/internal/readiness"
	"github.com/fintrack/backend/internal/repository"
	"github.com/fintrack/backend/internal/scheduler"
	"github.com/fintrack/backend/internal/service"
)

// @title FinTrack API
// @version 1.0
// @description Personal finance tracking API for Indian households: transactions, budgets by financial year, goals, investments, savings recommendations and income tax.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	if cfg.IsProduction() && cfg.JWTSecret == "dev-secret-change-in-production" {
		log.Error("JWT_SECRET must be set in production")
		os.Exit(1)
	}

	// Open is lazy; the start-up steps below wait for the database.
	db, err := sqlx.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("Failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewPrometheus(reg)

	// Repositories
	gw := repository.NewPostgresGateway(db, rec)
	userRepo := repository.NewUserRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)

	// Services
	userService := service.NewUserService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	referenceService := service.NewReferenceService(maintenanceRepo)
	savingsService := service.NewSavingsService(gw, maintenanceRepo, rec, cfg.RecommendationTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start-up work runs in the background; requests wait on the gate.
	gate := readiness.NewGate()
	database.SetConnectRetries(cfg.DBConnectRetries)
	migrator := database.NewMigrationRunner(db.DB, log)
	steps := []func(context.Context) error{migrator.WaitForDatabase}
	if cfg.AutoMigrate {
		steps = append(steps, func(context.Context) error { return migrator.RunMigrations() })
	}
	if cfg.SeedDefaults {
		steps = append(steps, referenceService.SeedDefaults)
	}
	gate.Run(ctx, steps...)

	router := handler.NewRouter(handler.Services{
		Auth:           userService,
		Tokens:         userService,
		Reference:      referenceService,
		Transactions:   service.NewTransactionService(gw),
		Categories:     service.NewCategoryService(gw),
		PaymentMethods: service.NewPaymentMethodService(gw),
		Budgets:        service.NewBudgetService(gw),
		Goals:          service.NewGoalService(gw),
		Investments:    service.NewInvestmentService(gw),
		Savings:        savingsService,
		Analytics:      service.NewAnalyticsService(gw),
	}, handler.RouterConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AuthRPS:          cfg.AuthLimit.RequestsPerSecond,
		AuthBurst:        cfg.AuthLimit.Burst,
		ReadinessTimeout: cfg.ReadinessWaitTimeout,
		Readiness:        gate,
		Metrics:          rec,
		MetricsHandler:   metrics.Handler(reg),
	})

	// Recommendation purge
	purge := scheduler.New(scheduler.Config{
		Schedule: cfg.PurgeSchedule,
		Timeout:  cfg.PurgeTimeout,
		Enabled:  cfg.PurgeEnabled,
	}, savingsService, rec, log)
	if err := purge.Start(); err != nil {
		log.Error("Failed to start purge scheduler", slog.String("error", err.Error()))
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server...")

		// Stop scheduler first
		<-purge.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Info("Server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
