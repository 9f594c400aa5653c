package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/aggregate"
	"github.com/fintrack/backend/internal/allocation"
	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/logger"
	"github.com/fintrack/backend/internal/metrics"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/pkg/currency"
)

// DefaultRecommendationTTL is how long an unaccepted recommendation stays valid.
const DefaultRecommendationTTL = 30 * 24 * time.Hour

// RecommendationPurger removes expired recommendations across all users.
type RecommendationPurger interface {
	DeleteExpiredRecommendations(ctx context.Context, now time.Time) (int64, error)
}

// SavingsService turns a monthly surplus into stored savings recommendations
// and tracks what the user does with them.
type SavingsService struct {
	gw      gateway.Gateway
	purger  RecommendationPurger
	metrics metrics.Recorder
	ttl     time.Duration
	now     Clock
}

// NewSavingsService creates a SavingsService. A nil recorder disables metrics
// and a non-positive ttl means DefaultRecommendationTTL.
func NewSavingsService(gw gateway.Gateway, purger RecommendationPurger, rec metrics.Recorder, ttl time.Duration) *SavingsService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if ttl <= 0 {
		ttl = DefaultRecommendationTTL
	}
	return &SavingsService{gw: gw, purger: purger, metrics: rec, ttl: ttl, now: time.Now}
}

type GenerateRecommendationsInput struct {
	MonthlyIncome   decimal.Decimal        `json:"monthlyIncome" validate:"gte=0"`
	MonthlyExpenses decimal.Decimal        `json:"monthlyExpenses" validate:"gte=0"`
	RiskProfile     allocation.RiskProfile `json:"riskProfile" validate:"omitempty,oneof=conservative moderate aggressive"`
}

// Surplus is what is left of income after expenses; it may be negative.
func (in GenerateRecommendationsInput) Surplus() decimal.Decimal {
	return in.MonthlyIncome.Sub(in.MonthlyExpenses)
}

type GeneratedRecommendations struct {
	Plan            allocation.Plan               `json:"plan"`
	Recommendations []model.SavingsRecommendation `json:"recommendations"`
}

type PendingRecommendations struct {
	Count        int                                      `json:"count"`
	HighPriority int                                      `json:"highPriority"`
	Total        decimal.Decimal                          `json:"total"`
	ByCategory   map[string][]model.SavingsRecommendation `json:"byCategory"`
}

// Preview computes an allocation plan without storing anything.
func (s *SavingsService) Preview(input GenerateRecommendationsInput) (allocation.Plan, error) {
	if err := validateInput(input); err != nil {
		return allocation.Plan{}, err
	}
	return allocation.BuildPlan(input.Surplus(), input.RiskProfile), nil
}

// Generate computes an allocation plan and stores one recommendation per
// funded bucket. The rows are written together or not at all. Without a
// surplus the plan is returned and nothing is stored.
func (s *SavingsService) Generate(ctx context.Context, input GenerateRecommendationsInput) (*GeneratedRecommendations, error) {
	plan, err := s.Preview(input)
	if err != nil {
		return nil, err
	}

	expires := s.now().UTC().Add(s.ttl)
	var rows []gateway.Values
	for _, a := range plan.Allocations {
		if !a.Amount.IsPositive() {
			continue
		}
		rows = append(rows, gateway.Values{
			"title":              recommendationTitle(a.Type),
			"description":        fmt.Sprintf("%s. Set aside %s a month.", a.Description, currency.FormatINR(a.Amount)),
			"recommended_amount": a.Amount,
			"priority":           string(recommendationPriority(a.Type)),
			"category":           string(a.Type),
			"expires_at":         expires,
		})
	}

	out := &GeneratedRecommendations{Plan: plan, Recommendations: []model.SavingsRecommendation{}}
	if len(rows) == 0 {
		return out, nil
	}

	if err := s.gw.InsertMany(ctx, gateway.SavingsRecommendations, rows, &out.Recommendations); err != nil {
		return nil, fmt.Errorf("storing recommendations: %w", err)
	}
	logger.FromContext(ctx).Info("Savings recommendations generated",
		slog.String("risk_profile", string(plan.RiskProfile)),
		slog.String("surplus", currency.FormatINR(plan.MonthlySurplus)),
		slog.Int("count", len(out.Recommendations)),
	)
	return out, nil
}

// List returns recommendations newest first. Expired ones are left out
// unless they were accepted. A limit of 0 means no limit.
func (s *SavingsService) List(ctx context.Context, limit int) ([]model.SavingsRecommendation, error) {
	f := gateway.Where(gateway.Or(
		gateway.Eq("is_accepted", true),
		gateway.Gt("expires_at", s.now().UTC()),
	)).WithLimit(limit)

	var recs []model.SavingsRecommendation
	if err := s.gw.Query(ctx, gateway.SavingsRecommendations, f, gateway.OrderBy(gateway.Desc("created_at")), &recs); err != nil {
		return nil, fmt.Errorf("listing recommendations: %w", err)
	}
	if recs == nil {
		recs = []model.SavingsRecommendation{}
	}
	return recs, nil
}

func (s *SavingsService) Accept(ctx context.Context, id uuid.UUID) (*model.SavingsRecommendation, error) {
	return s.patch(ctx, id, gateway.Values{"is_accepted": true})
}

// Complete marks an accepted recommendation as acted upon.
func (s *SavingsService) Complete(ctx context.Context, id uuid.UUID) (*model.SavingsRecommendation, error) {
	rec, err := getOne[model.SavingsRecommendation](ctx, s.gw, gateway.SavingsRecommendations, id, "recommendation")
	if err != nil {
		return nil, fmt.Errorf("getting recommendation %s: %w", id, err)
	}
	if !rec.IsAccepted {
		return nil, apperror.Conflict("only accepted recommendations can be completed")
	}
	return s.patch(ctx, id, gateway.Values{"is_completed": true})
}

func (s *SavingsService) Feedback(ctx context.Context, id uuid.UUID, feedback string) (*model.SavingsRecommendation, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, apperror.ValidationError("feedback", "Feedback is required")
	}
	if len(feedback) > 1000 {
		return nil, apperror.ValidationError("feedback", "Feedback must be at most 1000 characters")
	}
	return s.patch(ctx, id, gateway.Values{"user_feedback": feedback})
}

func (s *SavingsService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.gw.Delete(ctx, gateway.SavingsRecommendations, id); err != nil {
		return fmt.Errorf("deleting recommendation %s: %w", id, err)
	}
	return nil
}

// Pending summarises the recommendations not yet completed.
func (s *SavingsService) Pending(ctx context.Context) (*PendingRecommendations, error) {
	recs, err := s.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	pending := aggregate.PendingRecommendations(recs)
	return &PendingRecommendations{
		Count:        len(pending),
		HighPriority: len(aggregate.HighPriorityRecommendations(pending)),
		Total:        aggregate.PendingRecommendedTotal(pending),
		ByCategory:   aggregate.RecommendationsByCategory(pending),
	}, nil
}

// PurgeExpired deletes every expired recommendation that was never accepted.
func (s *SavingsService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.purger.DeleteExpiredRecommendations(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purging expired recommendations: %w", err)
	}
	s.metrics.RecommendationsPurged(n)
	return n, nil
}

func (s *SavingsService) patch(ctx context.Context, id uuid.UUID, patch gateway.Values) (*model.SavingsRecommendation, error) {
	var rec model.SavingsRecommendation
	if err := s.gw.Update(ctx, gateway.SavingsRecommendations, id, patch, &rec); err != nil {
		return nil, fmt.Errorf("updating recommendation %s: %w", id, err)
	}
	return &rec, nil
}

var recommendationTitles = map[allocation.Type]string{
	allocation.EmergencyFund:    "Build your emergency fund",
	allocation.FixedDeposit:     "Open a fixed deposit",
	allocation.RecurringDeposit: "Start a recurring deposit",
	allocation.DebtFund:         "Invest in debt mutual funds",
	allocation.EquityFund:       "Start an equity SIP",
	allocation.Stock:            "Invest in direct stocks",
}

func recommendationTitle(t allocation.Type) string {
	if title, ok := recommendationTitles[t]; ok {
		return title
	}
	return "Savings recommendation"
}

func recommendationPriority(t allocation.Type) model.RecommendationPriority {
	switch t {
	case allocation.EmergencyFund:
		return model.RecommendationPriorityHigh
	case allocation.EquityFund, allocation.Stock:
		return model.RecommendationPriorityLow
	default:
		return model.RecommendationPriorityMedium
	}
}
