package operations

import (
	"context"
	"sync/atomic"

	"github.com/aretw0/routeops/pkg/domain"
)

// RerouteSignal latches external reroute requests until an operation consumes them.
type RerouteSignal struct {
	requested atomic.Bool
}

// RequestReroute latches a reroute request. Repeated requests before the next
// consumption collapse into one.
func (s *RerouteSignal) RequestReroute() {
	s.requested.Store(true)
}

// Consume reports whether a reroute was requested and clears the request.
func (s *RerouteSignal) Consume() bool {
	return s.requested.Swap(false)
}

// ReroutingService reports a reroute on the first query after one was requested
// through its RerouteSignal.
type ReroutingService struct {
	name   string
	signal *RerouteSignal
}

// NewReroutingService creates an unconfigured ReroutingService operation.
func NewReroutingService(deps Deps) *ReroutingService {
	deps = deps.withDefaults()
	return &ReroutingService{signal: deps.Reroutes}
}

func (r *ReroutingService) Configure(ctx context.Context, name string, params map[string]any) error {
	r.name = name
	return nil
}

func (r *ReroutingService) ProcessType() domain.ProcessType { return domain.ProcessOnQuery }

func (r *ReroutingService) Name() string { return r.name }

func (r *ReroutingService) Perform(ctx context.Context, req domain.OperationRequest) (domain.OperationResult, error) {
	return domain.OperationResult{Reroute: r.signal.Consume()}, nil
}
