package observability

import (
	"context"

	"github.com/aretw0/routeops/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	Operations         *prometheus.CounterVec
	OperationErrors    *prometheus.CounterVec
	FeedbackOperations *prometheus.CounterVec
	Reroutes           *prometheus.CounterVec
	Duration           *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routeops_operations_total",
				Help: "Total number of route operations performed",
			},
			[]string{"operation", "process"},
		),
		OperationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routeops_operation_errors_total",
				Help: "Total number of failed route operations",
			},
			[]string{"operation"},
		),
		FeedbackOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routeops_feedback_operations_total",
				Help: "Graph operations delegated to the action feedback channel",
			},
			[]string{"type"},
		),
		Reroutes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "routeops_reroute_requests_total",
				Help: "Route operation results that requested a reroute",
			},
			[]string{"operation"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "routeops_operation_duration_seconds",
				Help:    "Duration of route operation invocations",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"operation"},
		),
	}

	for _, c := range []prometheus.Collector{m.Operations, m.OperationErrors, m.FeedbackOperations, m.Reroutes, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnOperationEnd: func(ctx context.Context, e *domain.OperationEvent) {
			m.Duration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.OperationErrors.WithLabelValues(e.Name).Inc()
				return
			}
			m.Operations.WithLabelValues(e.Name, e.Process.String()).Inc()
			if e.Reroute {
				m.Reroutes.WithLabelValues(e.Name).Inc()
			}
		},
		OnFeedbackOperation: func(ctx context.Context, e *domain.OperationEvent) {
			m.FeedbackOperations.WithLabelValues(e.Name).Inc()
		},
	}
}

// Chain combines hooks so that each callback of every set runs, in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnOperationStart: func(ctx context.Context, e *domain.OperationEvent) {
			for _, h := range hooks {
				if h.OnOperationStart != nil {
					h.OnOperationStart(ctx, e)
				}
			}
		},
		OnOperationEnd: func(ctx context.Context, e *domain.OperationEvent) {
			for _, h := range hooks {
				if h.OnOperationEnd != nil {
					h.OnOperationEnd(ctx, e)
				}
			}
		},
		OnFeedbackOperation: func(ctx context.Context, e *domain.OperationEvent) {
			for _, h := range hooks {
				if h.OnFeedbackOperation != nil {
					h.OnFeedbackOperation(ctx, e)
				}
			}
		},
	}
}
