// Command seed fills a database with a demo user and a few months of
// realistic looking activity.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/allocation"
	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/internal/database"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/logger"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/repository"
	"github.com/fintrack/backend/internal/service"
	"github.com/fintrack/backend/pkg/datetime"
)

func main() {
	email := flag.String("email", "demo@fintrack.local", "Demo user email")
	password := flag.String("password", "demo-password", "Demo user password")
	months := flag.Int("months", 6, "Months of transactions to generate")
	perMonth := flag.Int("expenses", 25, "Expense transactions per month")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall timeout")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := database.NewMigrationRunner(db.DB, log).RunMigrations(); err != nil {
		log.Error("Migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	s := newSeeder(db, cfg)
	if err := s.reference.SeedDefaults(ctx); err != nil {
		log.Error("Seeding reference data failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	user, err := s.user(ctx, *email, *password)
	if err != nil {
		log.Error("Creating demo user failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	ctx = gateway.WithUser(ctx, user.ID)

	stats, err := s.run(ctx, *months, *perMonth)
	if err != nil {
		log.Error("Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Seeded %s (%s)\n", user.Email, user.ID)
	fmt.Printf("  transactions:    %d\n", stats.transactions)
	fmt.Printf("  budgets:         %d\n", stats.budgets)
	fmt.Printf("  goals:           %d\n", stats.goals)
	fmt.Printf("  investments:     %d\n", stats.investments)
	fmt.Printf("  recommendations: %d\n", stats.recommendations)
}

type seeder struct {
	users        *service.UserService
	reference    *service.ReferenceService
	categories   *service.CategoryService
	transactions *service.TransactionService
	budgets      *service.BudgetService
	goals        *service.GoalService
	investments  *service.InvestmentService
	savings      *service.SavingsService
}

type seedStats struct {
	transactions, budgets, goals, investments, recommendations int
}

func newSeeder(db *sqlx.DB, cfg *config.Config) *seeder {
	gw := repository.NewPostgresGateway(db, nil)
	maintenance := repository.NewMaintenanceRepository(db)
	return &seeder{
		users:        service.NewUserService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.TokenTTL),
		reference:    service.NewReferenceService(maintenance),
		categories:   service.NewCategoryService(gw),
		transactions: service.NewTransactionService(gw),
		budgets:      service.NewBudgetService(gw),
		goals:        service.NewGoalService(gw),
		investments:  service.NewInvestmentService(gw),
		savings:      service.NewSavingsService(gw, maintenance, nil, cfg.RecommendationTTL),
	}
}

// user registers the demo account, or logs in when it already exists.
func (s *seeder) user(ctx context.Context, email, password string) (*model.User, error) {
	resp, err := s.users.Register(ctx, service.RegisterInput{Email: email, Password: password, Name: gofakeit.Name()})
	if errors.Is(err, apperror.ErrConflict) {
		resp, err = s.users.Login(ctx, service.LoginInput{Email: email, Password: password})
	}
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (s *seeder) run(ctx context.Context, months, perMonth int) (seedStats, error) {
	var stats seedStats

	income, err := s.categories.ListDefaults(ctx, model.CategoryTypeIncome)
	if err != nil {
		return stats, err
	}
	expense, err := s.categories.ListDefaults(ctx, model.CategoryTypeExpense)
	if err != nil {
		return stats, err
	}
	if len(income) == 0 || len(expense) == 0 {
		return stats, errors.New("default categories are missing")
	}

	salary := decimal.NewFromInt(int64(60000 + 5000*rand.IntN(10)))
	today := time.Now().UTC()
	start := datetime.StartOfMonth(today).AddDate(0, -months+1, 0)

	for m := 0; m < months; m++ {
		month := start.AddDate(0, m, 0)
		last := datetime.EndOfMonth(month)
		if last.After(today) {
			last = today
		}

		if _, err := s.transactions.Create(ctx, service.CreateTransactionInput{
			Amount:        salary,
			CategoryID:    income[0].ID,
			PaymentMethod: "Net Banking",
			Type:          model.TransactionTypeIncome,
			Title:         "Salary " + month.Format("Jan 2006"),
			Date:          datetime.DateOf(month),
			BankName:      gofakeit.Company(),
		}); err != nil {
			return stats, fmt.Errorf("salary for %s: %w", month.Format("2006-01"), err)
		}
		stats.transactions++

		for i := 0; i < perMonth; i++ {
			cat := expense[rand.IntN(len(expense))]
			day := month.AddDate(0, 0, rand.IntN(last.Day()))
			if _, err := s.transactions.Create(ctx, service.CreateTransactionInput{
				Amount:          decimal.NewFromFloat(gofakeit.Price(50, 3000)).Round(2),
				CategoryID:      cat.ID,
				PaymentMethod:   paymentMethods[rand.IntN(len(paymentMethods))],
				Type:            model.TransactionTypeExpense,
				Title:           cat.Name,
				Description:     gofakeit.Sentence(5),
				Date:            datetime.DateOf(day),
				ReferenceNumber: gofakeit.Numerify("TXN##########"),
			}); err != nil {
				return stats, fmt.Errorf("expense: %w", err)
			}
			stats.transactions++
		}
	}

	fy := datetime.FinancialYear(today)
	for _, cat := range expense[:min(5, len(expense))] {
		if _, err := s.budgets.SetMonthly(ctx, service.SetMonthlyBudgetInput{
			CategoryID:    cat.ID,
			FinancialYear: fy,
			Month:         int(today.Month()),
			BudgetAmount:  decimal.NewFromInt(int64(2000 + 500*rand.IntN(10))),
		}); err != nil {
			return stats, fmt.Errorf("budget for %s: %w", cat.Name, err)
		}
		stats.budgets++
	}

	goals := []service.CreateGoalInput{
		{
			Title:         "Emergency fund",
			TargetAmount:  salary.Mul(decimal.NewFromInt(6)),
			TargetDate:    datetime.DateOf(today.AddDate(1, 0, 0)),
			CurrentAmount: salary,
			Priority:      model.GoalPriorityHigh,
		},
		{
			Title:        "Holiday in " + gofakeit.City(),
			TargetAmount: decimal.NewFromInt(150000),
			TargetDate:   datetime.DateOf(today.AddDate(0, 8, 0)),
			Priority:     model.GoalPriorityMedium,
		},
	}
	for _, g := range goals {
		if _, err := s.goals.Create(ctx, g); err != nil {
			return stats, fmt.Errorf("goal %q: %w", g.Title, err)
		}
		stats.goals++
	}

	fdRate := decimal.NewFromFloat(7.1)
	fdValue := decimal.NewFromInt(104200)
	mfValue := decimal.NewFromInt(61850)
	investments := []service.CreateInvestmentInput{
		{
			Name:          gofakeit.Company() + " Fixed Deposit",
			Type:          model.InvestmentTypeFixedDeposit,
			InitialAmount: decimal.NewFromInt(100000),
			CurrentValue:  &fdValue,
			PurchaseDate:  datetime.DateOf(today.AddDate(0, -7, 0)),
			InterestRate:  &fdRate,
		},
		{
			Name:          "Index Fund SIP",
			Type:          model.InvestmentTypeMutualFund,
			InitialAmount: decimal.NewFromInt(60000),
			CurrentValue:  &mfValue,
			PurchaseDate:  datetime.DateOf(today.AddDate(-1, 0, 0)),
		},
	}
	for _, inv := range investments {
		if _, err := s.investments.Create(ctx, inv); err != nil {
			return stats, fmt.Errorf("investment %q: %w", inv.Name, err)
		}
		stats.investments++
	}

	recs, err := s.savings.Generate(ctx, service.GenerateRecommendationsInput{
		MonthlyIncome:   salary,
		MonthlyExpenses: salary.Mul(decimal.NewFromFloat(0.7)),
		RiskProfile:     allocation.Moderate,
	})
	if err != nil {
		return stats, fmt.Errorf("recommendations: %w", err)
	}
	stats.recommendations = len(recs.Recommendations)

	return stats, nil
}

var paymentMethods = []string{"Cash", "UPI", "Debit Card", "Credit Card"}
