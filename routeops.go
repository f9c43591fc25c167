package routeops

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/routeops/internal/runtime"
	"github.com/aretw0/routeops/pkg/adapters/memory"
	"github.com/aretw0/routeops/pkg/config"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/operations"
	"github.com/aretw0/routeops/pkg/ports"
)

// Engine is the high-level entry point of the library.
// It wires the plugin registry, the built-in operations and the internal
// operations manager behind a small API.
type Engine struct {
	manager *runtime.Manager
	factory ports.OperationFactory
	deps    operations.Deps
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Config  config.Config
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithRegistry replaces the built-in registry with a custom factory.
// Built-in operations are not registered into it.
func WithRegistry(factory ports.OperationFactory) Option {
	return func(e *Engine) {
		e.factory = factory
	}
}

// WithDeps sets the collaborators shared by the built-in operations.
func WithDeps(deps operations.Deps) Option {
	return func(e *Engine) {
		e.deps = deps
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates every configured operation and classifies it.
// It fails if any operation cannot be created or configured.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Engine, error) {
	eng := &Engine{Config: cfg}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Fill shared collaborators here so callers can reach them afterwards.
	if eng.deps.Publisher == nil {
		eng.deps.Publisher = memory.NewPublisher()
	}
	if eng.deps.Closures == nil {
		eng.deps.Closures = memory.NewClosureStore()
	}
	if eng.deps.Reroutes == nil {
		eng.deps.Reroutes = &operations.RerouteSignal{}
	}
	if eng.deps.Logger == nil {
		eng.deps.Logger = eng.logger
	}

	if eng.factory == nil {
		eng.factory = operations.NewRegistry(eng.deps)
	}

	manager, err := runtime.NewManager(ctx, cfg, eng.factory,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operations manager: %w", err)
	}
	eng.manager = manager
	return eng, nil
}

// Process dispatches the operations relevant to one navigation step and
// returns their aggregated effect.
func (e *Engine) Process(
	ctx context.Context,
	statusChange bool,
	state domain.RouteTrackingState,
	route *domain.Route,
	pose domain.Pose,
	rerouting domain.ReroutingState,
) (domain.OperationsResult, error) {
	return e.manager.Process(ctx, statusChange, state, route, pose, rerouting)
}

// Classification lists the configured operations per process type.
func (e *Engine) Classification() runtime.Classification {
	return e.manager.Classification()
}

// Deps returns the collaborators shared with the built-in operations.
// They are meaningless when a custom registry was injected.
func (e *Engine) Deps() operations.Deps {
	return e.deps
}

// Registry returns the operation factory in use.
func (e *Engine) Registry() ports.OperationFactory {
	return e.factory
}
