package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/routeops/pkg/config"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
	"github.com/google/uuid"
)

// Manager classifies the configured operations and dispatches them on every
// navigation step. The classified sets are fixed at construction and only read
// afterwards; Process is meant to be called from a single route follower.
type Manager struct {
	queryOps  []ports.RouteOperation
	changeOps []ports.RouteOperation
	graphOps  map[string]ports.RouteOperation

	useFeedbackOperations bool

	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
	stepID func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithClock overrides the time source used for events.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// Classification lists operation names per process type, in dispatch order.
// Graph operations are keyed by their declared operation type.
type Classification struct {
	Query  []string
	Change []string
	Graph  map[string]string
}

// NewManager creates and configures every operation listed in cfg and sorts
// it by process type. If any operation fails to be created or configured, no
// Manager is returned and the error wraps domain.ErrSetupFailed.
func NewManager(ctx context.Context, cfg config.Config, factory ports.OperationFactory, opts ...Option) (*Manager, error) {
	m := &Manager{
		graphOps:              make(map[string]ports.RouteOperation),
		useFeedbackOperations: cfg.FeedbackEnabled(),
		logger:                slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:                   time.Now,
		stepID:                uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, id := range cfg.Operations {
		op, err := m.createOperation(ctx, cfg, factory, id)
		if err != nil {
			m.logger.Error("Failed to create route operation", "operation", id, "err", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrSetupFailed, err)
		}

		switch pt := op.ProcessType(); pt {
		case domain.ProcessOnQuery:
			m.queryOps = append(m.queryOps, op)
		case domain.ProcessOnStatusChange:
			m.changeOps = append(m.changeOps, op)
		case domain.ProcessOnGraph:
			key := graphKey(op)
			if prev, ok := m.graphOps[key]; ok {
				m.logger.Warn("Graph operation type already registered, replacing it",
					"type", key, "replaced", prev.Name(), "operation", op.Name())
			}
			m.graphOps[key] = op
		default:
			err := fmt.Errorf("operation %s: unknown process type %d", id, pt)
			m.logger.Error("Failed to create route operation", "operation", id, "err", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrSetupFailed, err)
		}
	}

	return m, nil
}

func (m *Manager) createOperation(ctx context.Context, cfg config.Config, factory ports.OperationFactory, id string) (ports.RouteOperation, error) {
	pluginType, params, err := cfg.OperationSpec(id)
	if err != nil {
		return nil, err
	}

	op, err := factory.Create(pluginType)
	if err != nil {
		return nil, fmt.Errorf("operation %s: %w", id, err)
	}
	m.logger.Info("Created route operation", "operation", id, "type", pluginType)

	if err := op.Configure(ctx, id, params); err != nil {
		return nil, fmt.Errorf("operation %s: configure: %w", id, err)
	}
	return op, nil
}

// graphKey is the lookup key graph descriptors use to reference op.
func graphKey(op ports.RouteOperation) string {
	if g, ok := op.(ports.GraphOperation); ok {
		return g.OperationType()
	}
	return op.Name()
}

// Classification reports how the configured operations were sorted.
func (m *Manager) Classification() Classification {
	c := Classification{
		Query:  operationNames(m.queryOps),
		Change: operationNames(m.changeOps),
		Graph:  make(map[string]string, len(m.graphOps)),
	}
	for key, op := range m.graphOps {
		c.Graph[key] = op.Name()
	}
	return c
}

func operationNames(ops []ports.RouteOperation) []string {
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name())
	}
	return names
}

// FeedbackEnabled reports whether unknown graph operations are delegated.
func (m *Manager) FeedbackEnabled() bool {
	return m.useFeedbackOperations
}
