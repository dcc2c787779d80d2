package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// StopFunc tears down one component. It must respect ctx's deadline.
type StopFunc func(ctx context.Context) error

type component struct {
	name string
	stop StopFunc
}

// Manager runs registered teardown callbacks in reverse registration
// order when the process receives a termination signal, so dependents
// stop before the things they depend on.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	components []component
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register records a component for teardown. Later registrations stop first.
func (m *Manager) Register(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	m.components = append(m.components, component{name: name, stop: stop})
	m.mu.Unlock()
}

// Shutdown stops every registered component under the configured timeout.
// A failing component is logged and skipped; the rest still stop, and
// all failures come back joined.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	var errs error
	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]
		if err := c.stop(ctx); err != nil {
			m.logger.Error("component shutdown failed", zap.String("component", c.name), zap.Error(err))
			errs = errors.Join(errs, err)
			continue
		}
		m.logger.Info("component stopped", zap.String("component", c.name))
	}
	return errs
}

// Listen arms SIGTERM/SIGINT handling; the first signal invokes cancel.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}
