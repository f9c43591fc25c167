package dsl

import (
	"testing"

	"github.com/aretw0/routeops/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleGraph(t *testing.T) {
	b := New()
	b.Node("dock", 0, 0).Do("TriggerEvent", domain.Metadata{"event": "leaving_dock"})
	b.Node("aisle", 3, 4)
	b.Node("shelf", 3, 10).Meta("zone", "B")
	b.Edge("dock_aisle", "dock", "aisle").Meta(domain.KeySpeedLimit, 50.0)
	b.Edge("aisle_shelf", "aisle", "shelf").
		OnEnter("TriggerEvent", domain.Metadata{"event": "entering_aisle"}).
		OnExit("OpenDoor", nil)
	b.Route("pick", "dock_aisle", "aisle_shelf")

	g, err := b.Build()
	require.NoError(t, err)

	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 2)

	dock := g.Node("dock")
	require.NotNil(t, dock)
	require.Len(t, dock.Operations, 1)
	assert.Equal(t, domain.TriggerNode, dock.Operations[0].Trigger)
	assert.Equal(t, "B", g.Node("shelf").Metadata.String("zone", ""))

	edge := g.Edge("aisle_shelf")
	require.NotNil(t, edge)
	assert.Same(t, g.Node("aisle"), edge.Start)
	assert.Same(t, g.Node("shelf"), edge.End)
	require.Len(t, edge.Operations, 2)
	assert.Equal(t, domain.TriggerOnEnter, edge.Operations[0].Trigger)
	assert.Equal(t, domain.TriggerOnExit, edge.Operations[1].Trigger)
	assert.Equal(t, 50.0, g.Edge("dock_aisle").Metadata.Float(domain.KeySpeedLimit, 0))

	route := g.Route("pick")
	require.NotNil(t, route)
	assert.Same(t, dock, route.Start)
	assert.Same(t, g.Node("shelf"), route.Goal())
	assert.InDelta(t, 11.0, route.Cost, 1e-9)
}

func TestBuilder_ReturnsExisting(t *testing.T) {
	b := New()
	n1 := b.Node("a", 0, 0)
	n2 := b.Node("a", 5, 5)
	assert.Same(t, n1, n2)

	e1 := b.Edge("ab", "a", "b")
	e2 := b.Edge("ab", "a", "c")
	assert.Same(t, e1, e2)
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
	}{
		{"unknown node", func(b *Builder) {
			b.Node("a", 0, 0)
			b.Edge("ab", "a", "b")
		}},
		{"unknown edge", func(b *Builder) {
			b.Node("a", 0, 0)
			b.Route("r", "nope")
		}},
		{"empty route", func(b *Builder) {
			b.Route("r")
		}},
		{"not contiguous", func(b *Builder) {
			b.Node("a", 0, 0)
			b.Node("b", 1, 0)
			b.Node("c", 2, 0)
			b.Edge("ab", "a", "b")
			b.Edge("ac", "a", "c")
			b.Route("r", "ab", "ac")
		}},
		{"duplicate route", func(b *Builder) {
			b.Node("a", 0, 0)
			b.Node("b", 1, 0)
			b.Edge("ab", "a", "b")
			b.Route("r", "ab").Route("r", "ab")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			tt.build(b)
			_, err := b.Build()
			assert.ErrorIs(t, err, domain.ErrGraphInvalid)
		})
	}
}
