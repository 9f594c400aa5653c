package database

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests below mutate the package retry settings and so do not run in parallel.

func withFastRetries(t *testing.T, retries int) {
	t.Helper()
	origRetries, origInterval := maxRetries, retryInterval
	maxRetries, retryInterval = retries, 10*time.Millisecond
	t.Cleanup(func() {
		maxRetries, retryInterval = origRetries, origInterval
	})
}

func TestNewMigrationRunner(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, nil)

	assert.NotNil(t, runner)
	assert.Equal(t, db, runner.db)
	assert.NotNil(t, runner.logger)
}

func TestWaitForDatabase_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()

	err = NewMigrationRunner(db, nil).WaitForDatabase(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	withFastRetries(t, 3)

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing()

	err = NewMigrationRunner(db, nil).WaitForDatabase(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	withFastRetries(t, 2)

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err = NewMigrationRunner(db, nil).WaitForDatabase(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready after 2 attempts")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWaitForDatabase_ContextCancelled(t *testing.T) {
	withFastRetries(t, 5)

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = NewMigrationRunner(db, nil).WaitForDatabase(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestEmbeddedMigrationsDefineProcedures(t *testing.T) {
	body, err := fs.ReadFile(migrationsFS, "migrations/000002_analytics_functions.up.sql")
	require.NoError(t, err)

	for _, proc := range []string{
		"get_dashboard_analytics",
		"get_spending_trends",
		"get_category_spending_breakdown",
		"get_savings_rate_analysis",
		"get_goal_progress_summary",
		"get_investment_summary",
		"get_investment_performance",
		"get_budget_vs_actual_chart_data",
		"get_financial_year_summary",
		"get_category_budget_analysis",
	} {
		assert.Contains(t, string(body), "FUNCTION "+proc+"(", proc)
	}
}
