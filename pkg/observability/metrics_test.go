package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnOperationEnd(ctx, &domain.OperationEvent{Name: "Closures", Process: domain.ProcessOnQuery, Reroute: true, Duration: time.Millisecond})
	hooks.OnOperationEnd(ctx, &domain.OperationEvent{Name: "Closures", Process: domain.ProcessOnQuery})
	hooks.OnOperationEnd(ctx, &domain.OperationEvent{Name: "Speed", Process: domain.ProcessOnStatusChange, Err: errors.New("x")})
	hooks.OnFeedbackOperation(ctx, &domain.OperationEvent{Name: "Remote"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("Closures", "on_query")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reroutes.WithLabelValues("Closures")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationErrors.WithLabelValues("Speed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Operations.WithLabelValues("Speed", "on_status_change")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedbackOperations.WithLabelValues("Remote")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestNewMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnOperationEnd: func(ctx context.Context, e *domain.OperationEvent) { order = append(order, "a") },
	}
	b := domain.LifecycleHooks{
		OnOperationStart:    func(ctx context.Context, e *domain.OperationEvent) { order = append(order, "b-start") },
		OnOperationEnd:      func(ctx context.Context, e *domain.OperationEvent) { order = append(order, "b") },
		OnFeedbackOperation: func(ctx context.Context, e *domain.OperationEvent) { order = append(order, "b-feedback") },
	}

	hooks := observability.Chain(a, b)
	ev := &domain.OperationEvent{}
	hooks.OnOperationStart(context.Background(), ev)
	hooks.OnOperationEnd(context.Background(), ev)
	hooks.OnFeedbackOperation(context.Background(), ev)

	assert.Equal(t, []string{"b-start", "a", "b", "b-feedback"}, order)
}
