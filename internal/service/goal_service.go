package service

import (
	"context"
	"fmt"
	"slices"
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

// GoalService manages savings goals and their lifecycle.
type GoalService struct {
	gw  gateway.Gateway
	now Clock
}

func NewGoalService(gw gateway.Gateway) *GoalService {
	return &GoalService{gw: gw, now: time.Now}
}

type CreateGoalInput struct {
	Title                 string             `json:"title" validate:"required,max=255"`
	TargetAmount          decimal.Decimal    `json:"targetAmount" validate:"gt=0"`
	TargetDate            datetime.Date      `json:"targetDate" validate:"required"`
	CurrentAmount         decimal.Decimal    `json:"currentAmount" validate:"gte=0"`
	Priority              model.GoalPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	CategoryID            *uuid.UUID         `json:"categoryId"`
	Description           string             `json:"description"`
	AutoContribute        bool               `json:"autoContribute"`
	ContributionAmount    decimal.Decimal    `json:"contributionAmount" validate:"gte=0"`
	ContributionFrequency string             `json:"contributionFrequency" validate:"omitempty,oneof=weekly monthly quarterly yearly"`
}

type UpdateGoalInput struct {
	Title                 *string             `json:"title" validate:"omitempty,min=1,max=255"`
	TargetAmount          *decimal.Decimal    `json:"targetAmount" validate:"omitempty,gt=0"`
	TargetDate            *datetime.Date      `json:"targetDate"`
	Priority              *model.GoalPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	CategoryID            *uuid.UUID          `json:"categoryId"`
	Description           *string             `json:"description"`
	AutoContribute        *bool               `json:"autoContribute"`
	ContributionAmount    *decimal.Decimal    `json:"contributionAmount" validate:"omitempty,gte=0"`
	ContributionFrequency *string             `json:"contributionFrequency" validate:"omitempty,oneof=weekly monthly quarterly yearly"`
}

// GoalGroups partitions goals by every status and every priority.
type GoalGroups struct {
	ByStatus   map[model.GoalStatus][]model.FinancialGoal   `json:"byStatus"`
	ByPriority map[model.GoalPriority][]model.FinancialGoal `json:"byPriority"`
	HighActive []model.FinancialGoal                        `json:"highPriorityActive"`
}

// transitions lists the statuses each action may start from.
var transitions = map[model.GoalStatus][]model.GoalStatus{
	model.GoalStatusPaused:    {model.GoalStatusActive},
	model.GoalStatusActive:    {model.GoalStatusPaused},
	model.GoalStatusCompleted: {model.GoalStatusActive},
	model.GoalStatusCancelled: {model.GoalStatusActive, model.GoalStatusPaused, model.GoalStatusCompleted, model.GoalStatusCancelled},
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*model.GoalWithProgress, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = model.GoalPriorityMedium
	}
	frequency := input.ContributionFrequency
	if frequency == "" {
		frequency = "monthly"
	}
	if input.CategoryID != nil {
		if err := checkCategory(ctx, s.gw, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	values := gateway.Values{
		"title":                  strings.TrimSpace(input.Title),
		"description":            optional(input.Description),
		"target_amount":          input.TargetAmount,
		"current_amount":         input.CurrentAmount,
		"target_date":            input.TargetDate,
		"priority":               string(priority),
		"status":                 string(model.GoalStatusActive),
		"category_id":            input.CategoryID,
		"auto_contribute":        input.AutoContribute,
		"contribution_amount":    input.ContributionAmount,
		"contribution_frequency": frequency,
	}

	var g model.FinancialGoal
	if err := s.gw.Insert(ctx, gateway.FinancialGoals, values, &g); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}
	return withProgress(g), nil
}

// List returns goals by priority, then nearest target date. An empty status
// lists every goal.
func (s *GoalService) List(ctx context.Context, status model.GoalStatus) ([]model.GoalWithProgress, error) {
	goals, err := s.load(ctx, status)
	if err != nil {
		return nil, err
	}
	return aggregate.GoalsWithProgress(aggregate.SortGoals(goals)), nil
}

func (s *GoalService) Get(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error) {
	g, err := getOne[model.FinancialGoal](ctx, s.gw, gateway.FinancialGoals, id, "goal")
	if err != nil {
		return nil, fmt.Errorf("getting goal %s: %w", id, err)
	}
	return withProgress(*g), nil
}

func (s *GoalService) Update(ctx context.Context, id uuid.UUID, input UpdateGoalInput) (*model.GoalWithProgress, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	patch := gateway.Values{}
	if input.Title != nil {
		patch["title"] = strings.TrimSpace(*input.Title)
	}
	if input.TargetAmount != nil {
		patch["target_amount"] = *input.TargetAmount
	}
	if input.TargetDate != nil {
		patch["target_date"] = *input.TargetDate
	}
	if input.Priority != nil {
		patch["priority"] = string(*input.Priority)
	}
	if input.CategoryID != nil {
		if err := checkCategory(ctx, s.gw, *input.CategoryID); err != nil {
			return nil, err
		}
		patch["category_id"] = *input.CategoryID
	}
	if input.Description != nil {
		patch["description"] = optional(*input.Description)
	}
	if input.AutoContribute != nil {
		patch["auto_contribute"] = *input.AutoContribute
	}
	if input.ContributionAmount != nil {
		patch["contribution_amount"] = *input.ContributionAmount
	}
	if input.ContributionFrequency != nil {
		patch["contribution_frequency"] = *input.ContributionFrequency
	}

	return s.patch(ctx, id, patch)
}

func (s *GoalService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.gw.Delete(ctx, gateway.FinancialGoals, id); err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}
	return nil
}

// AddProgress adds amount to an active goal. Reaching the target completes it.
func (s *GoalService) AddProgress(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*model.GoalWithProgress, error) {
	if !amount.IsPositive() {
		return nil, apperror.ValidationError("amount", "Amount must be greater than 0")
	}

	g, err := getOne[model.FinancialGoal](ctx, s.gw, gateway.FinancialGoals, id, "goal")
	if err != nil {
		return nil, fmt.Errorf("getting goal %s: %w", id, err)
	}
	if g.Status != model.GoalStatusActive {
		return nil, apperror.Conflict(fmt.Sprintf("cannot add progress to a %s goal", g.Status))
	}

	current := g.CurrentAmount.Add(amount)
	patch := gateway.Values{"current_amount": current}
	if current.GreaterThanOrEqual(g.TargetAmount) {
		patch["status"] = string(model.GoalStatusCompleted)
	}
	return s.patch(ctx, id, patch)
}

func (s *GoalService) Pause(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error) {
	return s.transition(ctx, id, model.GoalStatusPaused)
}

func (s *GoalService) Activate(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error) {
	return s.transition(ctx, id, model.GoalStatusActive)
}

// Complete marks an active goal as reached and fills it to its target.
func (s *GoalService) Complete(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error) {
	return s.transition(ctx, id, model.GoalStatusCompleted)
}

func (s *GoalService) Cancel(ctx context.Context, id uuid.UUID) (*model.GoalWithProgress, error) {
	return s.transition(ctx, id, model.GoalStatusCancelled)
}

// Summary counts goals by status and totals the active ones.
func (s *GoalService) Summary(ctx context.Context) (model.GoalSummary, error) {
	goals, err := s.load(ctx, "")
	if err != nil {
		return model.GoalSummary{}, err
	}
	return aggregate.SummarizeGoals(goals, s.now()), nil
}

func (s *GoalService) Groups(ctx context.Context) (*GoalGroups, error) {
	goals, err := s.load(ctx, "")
	if err != nil {
		return nil, err
	}
	sorted := aggregate.SortGoals(goals)
	return &GoalGroups{
		ByStatus:   aggregate.GoalsByStatus(sorted),
		ByPriority: aggregate.GoalsByPriority(sorted),
		HighActive: aggregate.HighPriorityActiveGoals(sorted),
	}, nil
}

// ProgressSummary is the stored-procedure rendition of Summary.
func (s *GoalService) ProgressSummary(ctx context.Context) (*model.GoalProgressSummary, error) {
	var out model.GoalProgressSummary
	if err := s.gw.Call(ctx, gateway.GoalProgressSummary, nil, &out); err != nil {
		return nil, fmt.Errorf("loading goal progress summary: %w", err)
	}
	return &out, nil
}

func (s *GoalService) load(ctx context.Context, status model.GoalStatus) ([]model.FinancialGoal, error) {
	var f gateway.Filter
	if status != "" {
		f = gateway.Where(gateway.Eq("status", status))
	}

	var goals []model.FinancialGoal
	if err := s.gw.Query(ctx, gateway.FinancialGoals, f, gateway.OrderBy(gateway.Asc("target_date")), &goals); err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) transition(ctx context.Context, id uuid.UUID, to model.GoalStatus) (*model.GoalWithProgress, error) {
	g, err := getOne[model.FinancialGoal](ctx, s.gw, gateway.FinancialGoals, id, "goal")
	if err != nil {
		return nil, fmt.Errorf("getting goal %s: %w", id, err)
	}

	if !slices.Contains(transitions[to], g.Status) {
		return nil, apperror.Conflict(fmt.Sprintf("cannot move goal from %s to %s", g.Status, to))
	}

	patch := gateway.Values{"status": string(to)}
	if to == model.GoalStatusCompleted {
		patch["current_amount"] = g.TargetAmount
	}
	return s.patch(ctx, id, patch)
}

func (s *GoalService) patch(ctx context.Context, id uuid.UUID, patch gateway.Values) (*model.GoalWithProgress, error) {
	var g model.FinancialGoal
	if err := s.gw.Update(ctx, gateway.FinancialGoals, id, patch, &g); err != nil {
		return nil, fmt.Errorf("updating goal %s: %w", id, err)
	}
	return withProgress(g), nil
}

func withProgress(g model.FinancialGoal) *model.GoalWithProgress {
	return &model.GoalWithProgress{FinancialGoal: g, ProgressPercentage: aggregate.GoalProgress(g)}
}
