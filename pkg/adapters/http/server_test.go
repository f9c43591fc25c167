package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/routeops/pkg/adapters/memory"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRerouter struct{ calls int }

func (f *fakeRerouter) RequestReroute() { f.calls++ }

type fakeProcessor struct {
	state  domain.RouteTrackingState
	status bool
	edge   *domain.Edge
	result domain.OperationsResult
	err    error
	calls  int
}

func (f *fakeProcessor) Process(
	_ context.Context,
	statusChange bool,
	state domain.RouteTrackingState,
	_ *domain.Route,
	_ domain.Pose,
	rerouting domain.ReroutingState,
) (domain.OperationsResult, error) {
	f.calls++
	f.state, f.status, f.edge = state, statusChange, rerouting.CurrentEdge
	return f.result, f.err
}

func testGraph() *domain.Graph {
	a := &domain.Node{ID: "a"}
	b := &domain.Node{ID: "b", X: 1}
	c := &domain.Node{ID: "c", X: 2}
	ab := &domain.Edge{ID: "ab", Start: a, End: b}
	bc := &domain.Edge{ID: "bc", Start: b, End: c}
	g := domain.NewGraph()
	g.Nodes = map[string]*domain.Node{"a": a, "b": b, "c": c}
	g.Edges = map[string]*domain.Edge{"ab": ab, "bc": bc}
	g.Routes = map[string]*domain.Route{"main": {Start: a, Edges: []*domain.Edge{ab, bc}}}
	return g
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, NewHandler(&Server{}), "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestReroute(t *testing.T) {
	r := &fakeRerouter{}
	h := NewHandler(&Server{Reroutes: r})

	w := do(t, h, "POST", "/reroute", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, r.calls)
}

func TestClosures(t *testing.T) {
	store := memory.NewClosureStore()
	h := NewHandler(&Server{Closures: store})

	assert.Equal(t, http.StatusNoContent, do(t, h, "PUT", "/closures/e2", "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, "PUT", "/closures/n1", "").Code)

	w := do(t, h, "GET", "/closures/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"e2", "n1"}, body["closed"])

	assert.Equal(t, http.StatusNoContent, do(t, h, "DELETE", "/closures/e2", "").Code)
	closed, err := store.Closed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, closed)
}

func TestDisabledEndpoints(t *testing.T) {
	h := NewHandler(&Server{})
	assert.Equal(t, http.StatusNotFound, do(t, h, "POST", "/reroute", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/closures/", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/metrics", "").Code)
}

func TestProcessStep(t *testing.T) {
	g := testGraph()
	p := &fakeProcessor{result: domain.OperationsResult{
		Reroute:             true,
		BlockedIDs:          []string{"bc"},
		OperationsTriggered: []string{"Closures"},
	}}
	h := NewHandler(&Server{Processor: p, Graph: g})

	w := do(t, h, "POST", "/routes/main/steps", `{"index":1,"status_change":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res domain.OperationsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, p.result, res)
	assert.True(t, p.status)
	assert.Equal(t, "b", p.state.LastNode.ID)
	assert.Equal(t, "bc", p.state.CurrentEdge.ID)
	assert.Equal(t, 1, p.state.RouteEdgesIdx)
}

func TestProcessStep_Rerouting(t *testing.T) {
	g := testGraph()
	p := &fakeProcessor{}
	h := NewHandler(&Server{Processor: p, Graph: g})

	w := do(t, h, "POST", "/routes/main/steps", `{"index":0,"rerouting_edge":"ab"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, p.edge)
	assert.Equal(t, "ab", p.edge.ID)

	w = do(t, h, "POST", "/routes/main/steps", `{"index":0,"rerouting_edge":"zz"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessStep_Errors(t *testing.T) {
	g := testGraph()

	tests := []struct {
		name   string
		err    error
		path   string
		body   string
		status int
	}{
		{"unknown route", nil, "/routes/nope/steps", `{}`, http.StatusNotFound},
		{"bad body", nil, "/routes/main/steps", `{`, http.StatusBadRequest},
		{"index out of range", nil, "/routes/main/steps", `{"index":3}`, http.StatusBadRequest},
		{
			"operation not found",
			&domain.OperationError{Operation: "Missing", Err: domain.ErrOperationNotFound},
			"/routes/main/steps", `{"index":0}`, http.StatusUnprocessableEntity,
		},
		{
			"operation failed",
			fmt.Errorf("%w: boom", domain.ErrOperationFailed),
			"/routes/main/steps", `{"index":0}`, http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&Server{Processor: &fakeProcessor{err: tt.err}, Graph: g})
			w := do(t, h, "POST", tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestProcessStep_BodyTooLarge(t *testing.T) {
	p := &fakeProcessor{}
	h := NewHandler(&Server{Processor: p, Graph: testGraph()})

	body := `{"index":0,"rerouting_edge":"` + strings.Repeat("x", maxStepBody) + `"}`
	w := do(t, h, "POST", "/routes/main/steps", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, p.calls)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "routeops_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	w := do(t, NewHandler(&Server{Gatherer: reg}), "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "routeops_test_total 1")
}
