// Package health runs the readiness checks registered at startup.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskdialog/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// DefaultCheckTimeout bounds a single check when New is given zero.
const DefaultCheckTimeout = 2 * time.Second

type entry struct {
	checker ports.HealthChecker
	impact  ports.Impact
}

// Registry implements ports.HealthRegistry. Checks run concurrently and each
// gets its own deadline, so one hung dependency cannot stall the probe.
type Registry struct {
	timeout time.Duration

	mu      sync.RWMutex
	entries []entry
}

// New creates an empty registry whose checks time out after timeout.
func New(timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Registry{timeout: timeout}
}

// Register adds checker. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker, impact ports.Impact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{checker: checker, impact: impact})
}

// CheckAll runs every registered check. A check still running when its
// deadline passes, or when ctx ends, is reported with the context error and
// not waited for.
func (r *Registry) CheckAll(ctx context.Context) map[string]ports.HealthResult {
	r.mu.RLock()
	entries := append([]entry(nil), r.entries...)
	r.mu.RUnlock()

	results := make([]ports.HealthResult, len(entries))
	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Go(func() {
			results[i] = ports.HealthResult{Err: r.run(ctx, e.checker), Impact: e.impact}
		})
	}
	wg.Wait()

	out := make(map[string]ports.HealthResult, len(entries))
	for i, e := range entries {
		out[e.checker.Name()] = results[i]
	}
	return out
}

func (r *Registry) run(ctx context.Context, c ports.HealthChecker) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.HealthCheck(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%s: health check abandoned (limit %s): %w", c.Name(), r.timeout, ctx.Err())
	}
}

// Len returns the number of registered checkers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
