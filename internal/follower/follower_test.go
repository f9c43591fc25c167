package follower_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/routeops/internal/follower"
	"github.com/aretw0/routeops/internal/runtime"
	"github.com/aretw0/routeops/pkg/adapters/memory"
	"github.com/aretw0/routeops/pkg/config"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/operations"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareRoute() *domain.Route {
	a := &domain.Node{ID: "a", X: 0, Y: 0}
	b := &domain.Node{ID: "b", X: 4, Y: 0, Operations: []domain.Operation{
		{Type: "TriggerEvent", Trigger: domain.TriggerNode, Metadata: domain.Metadata{"event": "corner"}},
	}}
	c := &domain.Node{ID: "c", X: 4, Y: 4}
	ab := &domain.Edge{ID: "ab", Start: a, End: b, Metadata: domain.Metadata{"speed_limit": 30}}
	bc := &domain.Edge{ID: "bc", Start: b, End: c, Operations: []domain.Operation{
		{Type: "Remote", Trigger: domain.TriggerOnExit},
	}}
	return &domain.Route{Start: a, Edges: []*domain.Edge{ab, bc}}
}

func newManager(t *testing.T, deps operations.Deps) *runtime.Manager {
	t.Helper()
	cfg, err := config.Parse(map[string]any{
		"operations": []any{"Speed", "Events", "Closures"},
		"Speed":      map[string]any{"plugin": operations.PluginAdjustSpeedLimit},
		"Events":     map[string]any{"plugin": operations.PluginTriggerEvent},
		"Closures":   map[string]any{"plugin": operations.PluginEdgeClosures},
	})
	require.NoError(t, err)

	m, err := runtime.NewManager(context.Background(), cfg, operations.NewRegistry(deps))
	require.NoError(t, err)
	return m
}

func triggered(r follower.Report) [][]string {
	out := [][]string{}
	for _, s := range r.Steps {
		out = append(out, s.Result.OperationsTriggered)
	}
	return out
}

func TestStateAt(t *testing.T) {
	route := squareRoute()

	state, err := follower.StateAt(route, 1)
	require.NoError(t, err)
	assert.Same(t, route.Edges[1], state.CurrentEdge)
	assert.Same(t, route.Edges[1].Start, state.LastNode)
	assert.Equal(t, 1, state.RouteEdgesIdx)

	goal, err := follower.StateAt(route, 2)
	require.NoError(t, err)
	assert.Nil(t, goal.CurrentEdge)
	assert.Same(t, route.Goal(), goal.LastNode)

	_, err = follower.StateAt(route, 3)
	assert.Error(t, err)
	_, err = follower.StateAt(nil, 0)
	assert.Error(t, err)
}

func TestFollow_CompletesRoute(t *testing.T) {
	pub := memory.NewPublisher()
	m := newManager(t, operations.Deps{Publisher: pub})

	report, err := follower.Follow(context.Background(), m, squareRoute(), follower.Options{QueriesPerEdge: 1})
	require.NoError(t, err)

	assert.True(t, report.Completed)
	assert.False(t, report.Rerouted)

	want := [][]string{
		{"Speed", "Closures"},           // start of ab
		{"Closures"},                    // query on ab
		{"Events", "Speed", "Closures"}, // b reached, entering bc
		{"Closures"},                    // query on bc
		{"Remote", "Speed", "Closures"}, // goal: bc exited
	}
	if diff := cmp.Diff(want, triggered(report)); diff != "" {
		t.Errorf("triggered operations mismatch (-want +got):\n%s", diff)
	}

	// Midway along ab.
	assert.Equal(t, domain.Pose{X: 2, Y: 0, Yaw: 0}, report.Steps[1].Pose)
	assert.Equal(t, "b", report.Steps[4].NodeID)
	assert.Empty(t, report.Steps[4].EdgeID)

	assert.Len(t, pub.Topic("speed_limit"), 2)
	assert.Len(t, pub.Topic("route_events"), 1)
}

func TestFollow_StopsOnReroute(t *testing.T) {
	closures := memory.NewClosureStore()
	require.NoError(t, closures.Close(context.Background(), "c"))
	m := newManager(t, operations.Deps{Closures: closures})

	report, err := follower.Follow(context.Background(), m, squareRoute(), follower.Options{})
	require.NoError(t, err)

	assert.False(t, report.Completed)
	assert.True(t, report.Rerouted)
	require.Len(t, report.Steps, 1)
	assert.Equal(t, []string{"c"}, report.BlockedIDs)
}

type failingProcessor struct{ calls int }

var errStep = errors.New("step failed")

func (f *failingProcessor) Process(ctx context.Context, statusChange bool, state domain.RouteTrackingState, route *domain.Route, pose domain.Pose, rerouting domain.ReroutingState) (domain.OperationsResult, error) {
	f.calls++
	if f.calls == 2 {
		return domain.OperationsResult{}, errStep
	}
	return domain.NewOperationsResult(), nil
}

func TestFollow_PropagatesErrors(t *testing.T) {
	p := &failingProcessor{}

	report, err := follower.Follow(context.Background(), p, squareRoute(), follower.Options{})

	assert.ErrorIs(t, err, errStep)
	assert.Len(t, report.Steps, 1)
	assert.False(t, report.Completed)
}

func TestFollow_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := follower.Follow(ctx, &failingProcessor{}, squareRoute(), follower.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
