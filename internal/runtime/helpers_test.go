package runtime_test

import (
	"context"
	"errors"

	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
	"github.com/aretw0/routeops/pkg/registry"
)

// call records one Perform invocation.
type call struct {
	name string
	req  domain.OperationRequest
}

// recorder collects Perform calls across operations in invocation order.
type recorder struct {
	calls []call
}

func (r *recorder) names() []string {
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.name)
	}
	return out
}

// stubOperation is a configurable operation used by the manager tests.
type stubOperation struct {
	name         string
	process      domain.ProcessType
	opType       string
	result       domain.OperationResult
	err          error
	configureErr error
	rec          *recorder
}

func (s *stubOperation) Configure(ctx context.Context, name string, params map[string]any) error {
	if s.configureErr != nil {
		return s.configureErr
	}
	s.name = name
	if t, ok := params["operation_type"].(string); ok {
		s.opType = t
	}
	return nil
}

func (s *stubOperation) ProcessType() domain.ProcessType { return s.process }
func (s *stubOperation) Name() string                    { return s.name }

func (s *stubOperation) Perform(ctx context.Context, req domain.OperationRequest) (domain.OperationResult, error) {
	if s.rec != nil {
		s.rec.calls = append(s.rec.calls, call{name: s.name, req: req})
	}
	return s.result, s.err
}

// graphStub adds a declared operation type to stubOperation.
type graphStub struct {
	*stubOperation
}

func (g graphStub) OperationType() string {
	if g.opType == "" {
		return g.name
	}
	return g.opType
}

var errPerform = errors.New("perform exploded")

// stubRegistry registers one plugin type per stub. Each stub instance is
// returned as-is so tests can inspect it.
func stubRegistry(stubs map[string]ports.RouteOperation) *registry.Registry {
	r := registry.NewRegistry()
	for pluginType, op := range stubs {
		op := op
		r.Register(pluginType, func() ports.RouteOperation { return op })
	}
	return r
}
