// Package lifecycle coordinates named startup and shutdown hooks for the
// systems that make up a running service.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Hook is a named unit of startup or shutdown work.
type Hook func(ctx context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// Coordinator runs startup hooks concurrently as they are registered and
// defers shutdown hooks until Shutdown is called.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	startup errgroup.Group
	ready   atomic.Bool

	mu       sync.Mutex
	shutdown []namedHook
	failures []error
}

// New creates a Coordinator whose context is cancelled on Shutdown.
func New(logger *slog.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With("system", "lifecycle"),
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup starts fn immediately. A failing hook is logged and recorded;
// it does not stop the other hooks.
func (c *Coordinator) OnStartup(name string, fn Hook) {
	c.startup.Go(func() error {
		if err := fn(c.ctx); err != nil {
			c.logger.Error("startup hook failed", "hook", name, "error", err)
			c.mu.Lock()
			c.failures = append(c.failures, fmt.Errorf("%s: %w", name, err))
			c.mu.Unlock()
		}
		return nil
	})
}

// OnShutdown registers fn to run during Shutdown. Hooks run concurrently and
// receive a context carrying the shutdown deadline.
func (c *Coordinator) OnShutdown(name string, fn Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdown = append(c.shutdown, namedHook{name: name, fn: fn})
}

// Ready reports whether startup finished with every hook succeeding.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// WaitForStartup blocks until every startup hook has returned and reports
// the failed hooks, if any.
func (c *Coordinator) WaitForStartup() error {
	c.startup.Wait()

	c.mu.Lock()
	err := errors.Join(c.failures...)
	c.mu.Unlock()

	c.ready.Store(err == nil)
	return err
}

// Shutdown cancels the coordinator context and runs the shutdown hooks
// within timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c.mu.Lock()
	hooks := c.shutdown
	c.shutdown = nil
	c.mu.Unlock()

	errs := make([]error, len(hooks))
	done := make(chan struct{})

	go func() {
		var wg sync.WaitGroup
		for i, h := range hooks {
			wg.Go(func() {
				if err := h.fn(ctx); err != nil {
					errs[i] = fmt.Errorf("%s: %w", h.name, err)
				}
			})
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return errors.Join(errs...)
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
