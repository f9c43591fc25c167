package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/routeops"
	"github.com/aretw0/routeops/internal/logging"
	"github.com/aretw0/routeops/pkg/config"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/operations"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger builds the application logger. Logs go to w so that stdout stays
// reserved for command output.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(w, lvl, format), nil
}

// loadConfig reads the configuration file, or returns the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func buildEngine(ctx context.Context, cfg config.Config, deps operations.Deps, logger *slog.Logger, hooks domain.LifecycleHooks) (*routeops.Engine, error) {
	deps.Logger = logger
	return routeops.New(ctx, cfg,
		routeops.WithDeps(deps),
		routeops.WithLogger(logger),
		routeops.WithLifecycleHooks(hooks),
	)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnOperationStart: func(ctx context.Context, e *domain.OperationEvent) {
			logger.Debug("Operation Start", "operation", e.Name, "process", e.Process.String(), "step", e.StepID)
		},
		OnOperationEnd: func(ctx context.Context, e *domain.OperationEvent) {
			if e.Err != nil {
				logger.Debug("Operation End (Error)", "operation", e.Name, "err", e.Err)
				return
			}
			logger.Debug("Operation End", "operation", e.Name, "reroute", e.Reroute, "blocked", e.BlockedIDs, "duration", e.Duration)
		},
		OnFeedbackOperation: func(ctx context.Context, e *domain.OperationEvent) {
			logger.Debug("Feedback Operation", "type", e.Name, "step", e.StepID)
		},
	}
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
