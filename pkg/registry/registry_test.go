package registry_test

import (
	"context"
	"testing"

	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
	"github.com/aretw0/routeops/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopOperation struct{ name string }

func (n *noopOperation) Configure(ctx context.Context, name string, params map[string]any) error {
	n.name = name
	return nil
}
func (n *noopOperation) ProcessType() domain.ProcessType { return domain.ProcessOnQuery }
func (n *noopOperation) Name() string                    { return n.name }
func (n *noopOperation) Perform(ctx context.Context, req domain.OperationRequest) (domain.OperationResult, error) {
	return domain.OperationResult{}, nil
}

func TestRegistry_CreateReturnsFreshInstances(t *testing.T) {
	r := registry.NewRegistry()
	r.Register("Noop", func() ports.RouteOperation { return &noopOperation{} })

	a, err := r.Create("Noop")
	require.NoError(t, err)
	b, err := r.Create("Noop")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
}

func TestRegistry_UnknownType(t *testing.T) {
	r := registry.NewRegistry()

	_, err := r.Create("Missing")
	assert.ErrorIs(t, err, domain.ErrPluginNotFound)
	assert.Contains(t, err.Error(), "Missing")
}

func TestRegistry_NilFactoryResult(t *testing.T) {
	r := registry.NewRegistry()
	r.Register("Broken", func() ports.RouteOperation { return nil })

	_, err := r.Create("Broken")
	assert.Error(t, err)
}

func TestRegistry_TypesSortedAndOverwritten(t *testing.T) {
	r := registry.NewRegistry()
	r.Register("b", func() ports.RouteOperation { return &noopOperation{} })
	r.Register("a", func() ports.RouteOperation { return &noopOperation{} })
	r.Register("b", func() ports.RouteOperation { return &noopOperation{name: "second"} })

	assert.Equal(t, []string{"a", "b"}, r.Types())

	op, err := r.Create("b")
	require.NoError(t, err)
	assert.Equal(t, "second", op.Name())
}
