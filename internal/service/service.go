// Package service implements the FinTrack use cases. Services hold no
// per-user state: the authenticated user travels in the request context and
// every read or write goes through a gateway.Gateway, after which the
// aggregate package derives the views handed back to callers.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/apperror"
	"github.com/fintrack/backend/internal/gateway"
	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/pkg/datetime"
)

// Clock returns the current time. Tests replace it to pin dates.
type Clock func() time.Time

// getOne loads the row of entity with id. resource names the row in the
// not-found message.
func getOne[T any](ctx context.Context, gw gateway.Gateway, entity gateway.Entity, id uuid.UUID, resource string) (*T, error) {
	var rows []T
	if err := gw.Query(ctx, entity, gateway.Where(gateway.Eq("id", id)).WithLimit(1), nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.NotFound(resource)
	}
	return &rows[0], nil
}

// checkCategory rejects a category id the current user can not see. The
// gateway scopes categories to the defaults plus the user's own, so another
// user's private category comes back empty.
func checkCategory(ctx context.Context, gw gateway.Gateway, id uuid.UUID) error {
	var rows []model.Category
	if err := gw.Query(ctx, gateway.Categories, gateway.Where(gateway.Eq("id", id)).WithLimit(1), nil, &rows); err != nil {
		return fmt.Errorf("checking category %s: %w", id, err)
	}
	if len(rows) == 0 {
		return apperror.ValidationError("categoryId", "Category does not exist")
	}
	return nil
}

// optional trims s and returns nil when nothing is left.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func resolveFinancialYear(fy int, now time.Time) int {
	if fy > 0 {
		return fy
	}
	return datetime.FinancialYear(now.UTC())
}

func validMonth(month int) error {
	if month < 1 || month > 12 {
		return apperror.ValidationError("month", fmt.Sprintf("Month must be between 1 and 12, got %d", month))
	}
	return nil
}
