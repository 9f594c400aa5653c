package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPurger struct {
	mu    sync.Mutex
	calls int
	n     int64
	err   error
	done  chan struct{}
}

func (p *stubPurger) PurgeExpired(ctx context.Context) (int64, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.done != nil {
		p.done <- struct{}{}
	}
	return p.n, p.err
}

type jobRecorder struct {
	mu   sync.Mutex
	jobs []string
	errs []error
}

func (r *jobRecorder) ObserveGateway(string, string, time.Duration, error) {}
func (r *jobRecorder) ObserveHTTP(string, string, int, time.Duration) {}
func (r *jobRecorder) RecommendationsPurged(int64) {}

func (r *jobRecorder) ObserveJob(job string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	r.errs = append(r.errs, err)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_DisabledDoesNotRegister(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	s := New(cfg, &stubPurger{}, nil, quietLogger())

	require.NoError(t, s.Start())
	assert.False(t, s.IsRunning())
	assert.True(t, s.NextRun().IsZero())
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Schedule = "every tuesday"
	s := New(cfg, &stubPurger{}, nil, quietLogger())

	assert.Error(t, s.Start())
	assert.False(t, s.IsRunning())
}

func TestScheduler_StartRegistersJob(t *testing.T) {
	s := New(DefaultConfig(), &stubPurger{}, nil, quietLogger())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.True(t, s.IsRunning())
	next := s.NextRun()
	require.False(t, next.IsZero())
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 15, next.Minute())
	assert.Equal(t, 0, next.Second())
}

func TestScheduler_RunNowRecordsOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "success"},
		{name: "failure", err: errors.New("database unavailable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purger := &stubPurger{n: 4, err: tt.err, done: make(chan struct{}, 1)}
			rec := &jobRecorder{}
			s := New(DefaultConfig(), purger, rec, quietLogger())

			s.RunNow()

			select {
			case <-purger.done:
			case <-time.After(time.Second):
				t.Fatal("purge job did not run")
			}
			require.Eventually(t, func() bool {
				rec.mu.Lock()
				defer rec.mu.Unlock()
				return len(rec.jobs) == 1
			}, time.Second, 5*time.Millisecond)

			rec.mu.Lock()
			defer rec.mu.Unlock()
			assert.Equal(t, purgeJob, rec.jobs[0])
			assert.Equal(t, tt.err, rec.errs[0])
		})
	}
}
