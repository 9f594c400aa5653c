package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
)

// CategoryService manages the categories a user can file transactions under:
// the shared defaults plus the user's own.
type CategoryService struct {
	gw gateway.Gateway
}

func NewCategoryService(gw gateway.Gateway) *CategoryService {
	return &CategoryService{gw: gw}
}

type CreateCategoryInput struct {
	Name        string             `json:"name" validate:"required,max=100"`
	Type        model.CategoryType `json:"type" validate:"required,oneof=income expense"`
	Icon        string             `json:"icon" validate:"max=50"`
	Color       string             `json:"color" validate:"omitempty,hexcolor"`
	Description string             `json:"description"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon        *string `json:"icon" validate:"omitempty,max=50"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

var categoryOrder = gateway.OrderBy(gateway.Desc("is_default"), gateway.Asc("name"))

// List returns the defaults and the user's own categories, defaults first,
// each group by name. An empty catType lists both types.
func (s *CategoryService) List(ctx context.Context, catType model.CategoryType) ([]model.Category, error) {
	f := gateway.Where(gateway.Eq("is_active", true))
	if catType != "" {
		f = f.And(gateway.Eq("type", catType))
	}

	var cats []model.Category
	if err := s.gw.Query(ctx, gateway.Categories, f, categoryOrder, &cats); err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return cats, nil
}

// ListDefaults returns only the shared default categories.
func (s *CategoryService) ListDefaults(ctx context.Context, catType model.CategoryType) ([]model.Category, error) {
	f := gateway.Where(gateway.Eq("is_default", true))
	if catType != "" {
		f = f.And(gateway.Eq("type", catType))
	}

	var cats []model.Category
	if err := s.gw.Query(ctx, gateway.Categories, f, gateway.OrderBy(gateway.Asc("name")), &cats); err != nil {
		return nil, fmt.Errorf("listing default categories: %w", err)
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return cats, nil
}

// Create adds a category owned by the current user. User categories are never
// shared defaults.
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*model.Category, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	values := gateway.Values{
		"name":        strings.TrimSpace(input.Name),
		"type":        string(input.Type),
		"description": optional(input.Description),
		"is_active":   true,
	}
	if input.Icon != "" {
		values["icon"] = input.Icon
	}
	if input.Color != "" {
		values["color"] = input.Color
	}

	var cat model.Category
	if err := s.gw.Insert(ctx, gateway.Categories, values, &cat); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return &cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*model.Category, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	patch := gateway.Values{}
	if input.Name != nil {
		patch["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Icon != nil {
		patch["icon"] = *input.Icon
	}
	if input.Color != nil {
		patch["color"] = *input.Color
	}
	if input.Description != nil {
		patch["description"] = optional(*input.Description)
	}
	if input.IsActive != nil {
		patch["is_active"] = *input.IsActive
	}

	var cat model.Category
	if err := s.gw.Update(ctx, gateway.Categories, id, patch, &cat); err != nil {
		return nil, fmt.Errorf("updating category %s: %w", id, err)
	}
	return &cat, nil
}

// Delete removes a user category. A category still referenced by a
// transaction cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	var used []model.Transaction
	f := gateway.Where(gateway.Eq("category_id", id)).WithLimit(1)
	if err := s.gw.Query(ctx, gateway.Transactions, f, nil, &used); err != nil {
		return fmt.Errorf("checking category %s usage: %w", id, err)
	}
	if len(used) > 0 {
		return apperror.Conflict("category is used by existing transactions")
	}

	if err := s.gw.Delete(ctx, gateway.Categories, id); err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	return nil
}
