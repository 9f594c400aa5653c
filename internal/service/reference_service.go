package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack/backend/internal/allocation"
	"github.com/fintrack/backend/internal/logger"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/tax"
	"github.com/fintrack/backend/pkg/datetime"
)

// Seeder writes the shared reference rows that every user sees.
type Seeder interface {
	SeedDefaultCategories(ctx context.Context, seeds []model.CategorySeed) (int, error)
	SeedPaymentMethods(ctx context.Context, seeds []model.PaymentMethodSeed) (int, error)
}

// ReferenceService exposes the static reference data and the pure
// calculators that need no stored data.
type ReferenceService struct {
	seeder Seeder
	now    Clock
}

func NewReferenceService(seeder Seeder) *ReferenceService {
	return &ReferenceService{seeder: seeder, now: time.Now}
}

type Reference struct {
	Banks              []model.Bank              `json:"banks"`
	PaymentMethods     []model.PaymentMethodSeed `json:"paymentMethods"`
	DefaultCategories  []model.CategorySeed      `json:"defaultCategories"`
	FinancialTerms     map[string]string         `json:"financialTerms"`
	FinancialFestivals []model.FinancialFestival `json:"financialFestivals"`
	TaxRegimes         []tax.Regime              `json:"taxRegimes"`
	RiskProfiles       []allocation.RiskProfile  `json:"riskProfiles"`
	CurrentFY          FinancialYearInfo         `json:"currentFinancialYear"`
}

type FinancialYearInfo struct {
	FinancialYear int           `json:"financialYear"`
	Label         string        `json:"label"`
	Start         datetime.Date `json:"start"`
	End           datetime.Date `json:"end"`
	Month         int           `json:"financialMonth"` // 1 is April
	DaysRemaining int           `json:"daysRemaining"`
}

func (s *ReferenceService) Reference() Reference {
	return Reference{
		Banks:              model.Banks,
		PaymentMethods:     model.DefaultPaymentMethods,
		DefaultCategories:  model.DefaultCategories,
		FinancialTerms:     model.FinancialTerms,
		FinancialFestivals: model.FinancialFestivals,
		TaxRegimes:         tax.Regimes(),
		RiskProfiles:       []allocation.RiskProfile{allocation.Conservative, allocation.Moderate, allocation.Aggressive},
		CurrentFY:          s.FinancialYear(datetime.Date{}),
	}
}

// FinancialYear resolves the financial year of date, or of today when date is
// zero.
func (s *ReferenceService) FinancialYear(date datetime.Date) FinancialYearInfo {
	t := date.Time
	if date.IsZero() {
		t = s.now().UTC()
	}
	fy := datetime.FinancialYear(t)
	start, end := datetime.FinancialYearRange(fy)
	return FinancialYearInfo{
		FinancialYear: fy,
		Label:         datetime.FinancialYearLabel(fy),
		Start:         datetime.DateOf(start),
		End:           datetime.DateOf(end),
		Month:         datetime.FinancialMonth(t),
		DaysRemaining: datetime.DaysBetween(t, end),
	}
}

// SeedDefaults inserts the missing default categories and payment methods.
// It is idempotent.
func (s *ReferenceService) SeedDefaults(ctx context.Context) error {
	cats, err := s.seeder.SeedDefaultCategories(ctx, model.DefaultCategories)
	if err != nil {
		return fmt.Errorf("seeding default categories: %w", err)
	}
	methods, err := s.seeder.SeedPaymentMethods(ctx, model.DefaultPaymentMethods)
	if err != nil {
		return fmt.Errorf("seeding payment methods: %w", err)
	}

	logger.FromContext(ctx).Info("Reference data seeded",
		slog.Int("categories_added", cats),
		slog.Int("payment_methods_added", methods),
	)
	return nil
}
