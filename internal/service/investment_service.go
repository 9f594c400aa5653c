package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/aggregate"
	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/pkg/datetime"
)

// InvestmentService tracks holdings and their portfolio share.
type InvestmentService struct {
	gw  gateway.Gateway
	now Clock
}

func NewInvestmentService(gw gateway.Gateway) *InvestmentService {
	return &InvestmentService{gw: gw, now: time.Now}
}

type CreateInvestmentInput struct {
	Name          string               `json:"name" validate:"required,max=255"`
	Type          model.InvestmentType `json:"type" validate:"required,oneof=fixed_deposit recurring_deposit mutual_fund stock bond ppf epf nps gold real_estate crypto other"`
	InitialAmount decimal.Decimal      `json:"initialAmount" validate:"gt=0"`
	CurrentValue  *decimal.Decimal     `json:"currentValue" validate:"omitempty,gte=0"`
	PurchaseDate  datetime.Date        `json:"purchaseDate"`
	MaturityDate  *datetime.Date       `json:"maturityDate"`
	InterestRate  *decimal.Decimal     `json:"interestRate" validate:"omitempty,gte=0,lte=100"`
	Provider      string               `json:"provider" validate:"max=255"`
	GoalID        *uuid.UUID           `json:"goalId" label:"Goal"`
	Notes         string               `json:"notes"`
}

type UpdateInvestmentInput struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=255"`
	CurrentValue *decimal.Decimal `json:"currentValue" validate:"omitempty,gte=0"`
	MaturityDate *datetime.Date   `json:"maturityDate"`
	InterestRate *decimal.Decimal `json:"interestRate" validate:"omitempty,gte=0,lte=100"`
	Provider     *string          `json:"provider" validate:"omitempty,max=255"`
	GoalID       *uuid.UUID       `json:"goalId" label:"Goal"`
	IsActive     *bool            `json:"isActive"`
	Notes        *string          `json:"notes"`
}

// Create stores a new active investment. Without a current value the
// investment is valued at its initial amount; without a purchase date it was
// bought today.
func (s *InvestmentService) Create(ctx context.Context, input CreateInvestmentInput) (*model.Investment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.MaturityDate != nil && !input.PurchaseDate.IsZero() && input.MaturityDate.Before(input.PurchaseDate.Time) {
		return nil, apperror.ValidationError("maturityDate", "Maturity date must not be before the purchase date")
	}

	current := input.InitialAmount
	if input.CurrentValue != nil {
		current = *input.CurrentValue
	}
	purchased := input.PurchaseDate
	if purchased.IsZero() {
		purchased = datetime.DateOf(s.now().UTC())
	}

	values := gateway.Values{
		"name":           strings.TrimSpace(input.Name),
		"type":           string(input.Type),
		"initial_amount": input.InitialAmount,
		"current_value":  current,
		"purchase_date":  purchased,
		"maturity_date":  input.MaturityDate,
		"interest_rate":  input.InterestRate,
		"provider":       optional(input.Provider),
		"goal_id":        input.GoalID,
		"notes":          optional(input.Notes),
		"is_active":      true,
	}

	var inv model.Investment
	if err := s.gw.Insert(ctx, gateway.Investments, values, &inv); err != nil {
		return nil, fmt.Errorf("creating investment: %w", err)
	}
	return &inv, nil
}

// List returns investments with their returns and share of the active
// portfolio, largest holding first.
func (s *InvestmentService) List(ctx context.Context, activeOnly bool) ([]model.InvestmentWithPortfolio, error) {
	investments, err := s.load(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return aggregate.WithPortfolio(investments), nil
}

func (s *InvestmentService) Get(ctx context.Context, id uuid.UUID) (*model.Investment, error) {
	inv, err := getOne[model.Investment](ctx, s.gw, gateway.Investments, id, "investment")
	if err != nil {
		return nil, fmt.Errorf("getting investment %s: %w", id, err)
	}
	return inv, nil
}

func (s *InvestmentService) Update(ctx context.Context, id uuid.UUID, input UpdateInvestmentInput) (*model.Investment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	patch := gateway.Values{}
	if input.Name != nil {
		patch["name"] = strings.TrimSpace(*input.Name)
	}
	if input.CurrentValue != nil {
		patch["current_value"] = *input.CurrentValue
	}
	if input.MaturityDate != nil {
		patch["maturity_date"] = *input.MaturityDate
	}
	if input.InterestRate != nil {
		patch["interest_rate"] = *input.InterestRate
	}
	if input.Provider != nil {
		patch["provider"] = optional(*input.Provider)
	}
	if input.GoalID != nil {
		patch["goal_id"] = *input.GoalID
	}
	if input.IsActive != nil {
		patch["is_active"] = *input.IsActive
	}
	if input.Notes != nil {
		patch["notes"] = optional(*input.Notes)
	}

	return s.patch(ctx, id, patch)
}

// UpdateValue records a new market value.
func (s *InvestmentService) UpdateValue(ctx context.Context, id uuid.UUID, value decimal.Decimal) (*model.Investment, error) {
	if value.IsNegative() {
		return nil, apperror.ValidationError("currentValue", "Current value must be at least 0")
	}
	return s.patch(ctx, id, gateway.Values{"current_value": value})
}

func (s *InvestmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.gw.Delete(ctx, gateway.Investments, id); err != nil {
		return fmt.Errorf("deleting investment %s: %w", id, err)
	}
	return nil
}

// Performance totals returns over the active investments.
func (s *InvestmentService) Performance(ctx context.Context) (model.InvestmentPerformance, error) {
	investments, err := s.load(ctx, true)
	if err != nil {
		return model.InvestmentPerformance{}, err
	}
	return aggregate.SummarizeInvestments(investments), nil
}

func (s *InvestmentService) ByType(ctx context.Context) (map[model.InvestmentType][]model.Investment, error) {
	investments, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	return aggregate.InvestmentsByType(investments), nil
}

// Summary is the stored-procedure view of holdings grouped by type.
func (s *InvestmentService) Summary(ctx context.Context) (*model.InvestmentSummary, error) {
	var out model.InvestmentSummary
	if err := s.gw.Call(ctx, gateway.InvestmentSummary, nil, &out); err != nil {
		return nil, fmt.Errorf("loading investment summary: %w", err)
	}
	return &out, nil
}

// Returns lists per-investment returns and holding periods.
func (s *InvestmentService) Returns(ctx context.Context) ([]model.InvestmentReturn, error) {
	var out []model.InvestmentReturn
	if err := s.gw.Call(ctx, gateway.InvestmentPerformance, nil, &out); err != nil {
		return nil, fmt.Errorf("loading investment performance: %w", err)
	}
	if out == nil {
		out = []model.InvestmentReturn{}
	}
	return out, nil
}

func (s *InvestmentService) load(ctx context.Context, activeOnly bool) ([]model.Investment, error) {
	var f gateway.Filter
	if activeOnly {
		f = gateway.Where(gateway.Eq("is_active", true))
	}

	var investments []model.Investment
	if err := s.gw.Query(ctx, gateway.Investments, f, gateway.OrderBy(gateway.Desc("current_value")), &investments); err != nil {
		return nil, fmt.Errorf("listing investments: %w", err)
	}
	return investments, nil
}

func (s *InvestmentService) patch(ctx context.Context, id uuid.UUID, patch gateway.Values) (*model.Investment, error) {
	var inv model.Investment
	if err := s.gw.Update(ctx, gateway.Investments, id, patch, &inv); err != nil {
		return nil, fmt.Errorf("updating investment %s: %w", id, err)
	}
	return &inv, nil
}
