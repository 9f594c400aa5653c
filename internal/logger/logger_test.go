package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	assert.NotNil(t, Logger())
}

func TestNewLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     string
		level   string
		debugOn bool
		infoOn  bool
	}{
		{"development defaults to debug", "development", "", true, true},
		{"production defaults to info", "production", "", false, true},
		{"explicit error level", "development", "error", false, false},
		{"unknown level means info", "production", "chatty", false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := New(tt.env, tt.level)
			ctx := context.Background()
			assert.Equal(t, tt.debugOn, l.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.infoOn, l.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestContextValues(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithUserID(ctx, "user-456")

	assert.Equal(t, "req-123", ctx.Value(requestIDKey))
	assert.Equal(t, "user-456", ctx.Value(userIDKey))
	assert.NotNil(t, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}
