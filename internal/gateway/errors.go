package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/apperror"
)

// Error reports a failed gateway operation. Err is either a classified
// *apperror.AppError (not found, conflict, bad request) or the raw store error.
type Error struct {
	Op     string
	Entity string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RequireUser returns the current user of gw or a not-authenticated error.
func RequireUser(ctx context.Context, gw Gateway) (uuid.UUID, error) {
	id, ok := gw.CurrentUser(ctx)
	if !ok {
		return uuid.Nil, apperror.NotAuthenticated()
	}
	return id, nil
}
