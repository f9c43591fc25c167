package file_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/routeops/pkg/adapters/file"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Warehouse(t *testing.T) {
	g, err := file.NewLoader(filepath.Join("testdata", "warehouse.yaml")).LoadGraph(context.Background())
	require.NoError(t, err)

	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 2)

	shelf := g.Node("shelf")
	require.NotNil(t, shelf)
	require.Len(t, shelf.Operations, 2)
	assert.Equal(t, domain.Operation{
		Type:     "TriggerEvent",
		Trigger:  domain.TriggerNode,
		Metadata: domain.Metadata{"event": "arrived_at_shelf"},
	}, shelf.Operations[0])
	assert.Equal(t, "Closure", shelf.Operations[1].Type)

	edge := g.Edge("dock_aisle")
	require.NotNil(t, edge)
	assert.Same(t, g.Node("dock"), edge.Start)
	assert.Same(t, g.Node("aisle"), edge.End)
	assert.Equal(t, 50.0, edge.Metadata.Float("speed_limit", 0))
	assert.Equal(t, domain.TriggerOnExit, edge.Operations[0].Trigger)

	route := g.Route("pick")
	require.NotNil(t, route)
	assert.Same(t, g.Node("dock"), route.Start)
	assert.Same(t, g.Node("shelf"), route.Goal())
	assert.Equal(t, []*domain.Edge{g.Edge("dock_aisle"), g.Edge("aisle_shelf")}, route.Edges)
	// 5 from coordinates plus the explicit 2.5.
	assert.InDelta(t, 7.5, route.Cost, 1e-9)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := file.NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).LoadGraph(context.Background())
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Malformed", "nodes: [:"},
		{"Node without id", "nodes: [{x: 1}]"},
		{"Duplicate node", "nodes: [{id: a}, {id: a}]"},
		{"Edge to unknown node", "nodes: [{id: a}]\nedges: [{id: e, start: a, end: b}]"},
		{"Duplicate edge", "nodes: [{id: a}, {id: b}]\nedges: [{id: e, start: a, end: b}, {id: e, start: b, end: a}]"},
		{"Bad trigger", "nodes: [{id: a, operations: [{type: X, trigger: sometimes}]}]"},
		{"Operation without type", "nodes: [{id: a, operations: [{trigger: node}]}]"},
		{"Unknown route edge", "nodes: [{id: a}]\nroutes: {r: [nope]}"},
		{"Empty route", "nodes: [{id: a}]\nroutes: {r: []}"},
		{"Disconnected route", "nodes: [{id: a}, {id: b}, {id: c}]\nedges: [{id: ab, start: a, end: b}, {id: ac, start: a, end: c}]\nroutes: {r: [ab, ac]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.Parse([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrGraphInvalid)
		})
	}
}
