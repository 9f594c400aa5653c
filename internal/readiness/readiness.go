// Package readiness provides a one-shot gate that holds requests until
// start-up work has finished.
package readiness

import (
	"context"
	"sync"
)

// Gate is resolved exactly once. Waiters block until then and all observe the
// same outcome.
type Gate struct {
	once sync.Once
	done chan struct{}
	err  error
}

func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Resolve records the start-up outcome. Later calls are ignored.
func (g *Gate) Resolve(err error) {
	g.once.Do(func() {
		g.err = err
		close(g.done)
	})
}

// Wait blocks until the gate is resolved or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return g.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready reports whether the gate resolved without error.
func (g *Gate) Ready() bool {
	select {
	case <-g.done:
		return g.err == nil
	default:
		return false
	}
}

// Run executes start-up steps in order on a new goroutine and resolves the gate
// with the first failure, or nil.
func (g *Gate) Run(ctx context.Context, steps ...func(context.Context) error) {
	go func() {
		for _, step := range steps {
			if err := step(ctx); err != nil {
				g.Resolve(err)
				return
			}
		}
		g.Resolve(nil)
	}()
}
