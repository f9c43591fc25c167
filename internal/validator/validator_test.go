package validator

import (
	"testing"

	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckGraph_Clean(t *testing.T) {
	b := dsl.New()
	b.Node("a", 0, 0).Do("TriggerEvent", nil)
	b.Node("b", 1, 0)
	b.Node("c", 2, 0)
	b.Edge("ab", "a", "b").OnEnter("Beep", nil)
	b.Edge("bc", "b", "c").OnExit("Beep", nil)
	b.Route("r", "ab")
	g, err := b.Build()
	require.NoError(t, err)

	// c is reachable through bc even though no route uses it.
	assert.Empty(t, CheckGraph(g))
}

func TestCheckGraph_Findings(t *testing.T) {
	b := dsl.New()
	b.Node("a", 0, 0)
	b.Node("b", 1, 0)
	b.Node("island", 5, 5)
	b.Edge("ab", "a", "b")
	b.Route("r", "ab")
	g, err := b.Build()
	require.NoError(t, err)

	g.Nodes["a"].Operations = []domain.Operation{{Type: "Beep", Trigger: domain.TriggerOnEnter}}
	g.Edges["ab"].Operations = []domain.Operation{{Type: "Door", Trigger: domain.TriggerNode}}

	assert.Equal(t, []string{
		"node a: Beep descriptor with trigger on_enter never fires on a node",
		"edge ab: Door descriptor with trigger node never fires on an edge",
		"node island is unreachable from any route start",
	}, CheckGraph(g))
}

func TestCheckGraph_NoRoutes(t *testing.T) {
	b := dsl.New()
	b.Node("a", 0, 0)
	g, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, CheckGraph(g))
}
