package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
)

// Process runs the operations due at the current step and merges their results.
//
// When statusChange is set, operations referenced by the graph at the reached
// node, entered edge and exited edge run first, followed by the status change
// operations. Query operations run on every call. The first failing operation
// aborts the call; the partial result is discarded.
func (m *Manager) Process(
	ctx context.Context,
	statusChange bool,
	state domain.RouteTrackingState,
	route *domain.Route,
	pose domain.Pose,
	rerouting domain.ReroutingState,
) (domain.OperationsResult, error) {
	req := domain.OperationRequest{
		Node:        state.LastNode,
		EdgeEntered: state.CurrentEdge,
		EdgeExited:  previousEdge(state, route),
		Route:       route,
		Pose:        pose,
	}

	// After a reroute mid-edge, the first step of the new route still leaves
	// the partially traversed edge.
	if state.RouteEdgesIdx == 0 && rerouting.CurrentEdge != nil {
		req.EdgeExited = rerouting.CurrentEdge
	}

	step := &dispatchStep{manager: m, id: m.stepID(), result: domain.NewOperationsResult()}

	if statusChange {
		for _, desc := range FindGraphOperations(req.Node, req.EdgeEntered, req.EdgeExited) {
			op, ok := m.graphOps[desc.Type]
			if !ok {
				if !m.useFeedbackOperations {
					return domain.OperationsResult{}, &domain.OperationError{
						Operation: desc.Type,
						Err:       fmt.Errorf("%w: not loaded in route operations", domain.ErrOperationNotFound),
					}
				}
				step.feedback(ctx, desc.Type)
				continue
			}

			graphReq := req
			graphReq.Metadata = desc.Metadata
			if err := step.perform(ctx, op, graphReq); err != nil {
				return domain.OperationsResult{}, err
			}
		}

		if err := step.performAll(ctx, m.changeOps, req); err != nil {
			return domain.OperationsResult{}, err
		}
	}

	if err := step.performAll(ctx, m.queryOps, req); err != nil {
		return domain.OperationsResult{}, err
	}
	return step.result, nil
}

func previousEdge(state domain.RouteTrackingState, route *domain.Route) *domain.Edge {
	if state.RouteEdgesIdx <= 0 || route == nil {
		return nil
	}
	if state.RouteEdgesIdx-1 >= len(route.Edges) {
		return nil
	}
	return route.Edges[state.RouteEdgesIdx-1]
}

// dispatchStep accumulates the result of one Process call.
type dispatchStep struct {
	manager *Manager
	id      string
	result  domain.OperationsResult
}

func (s *dispatchStep) performAll(ctx context.Context, ops []ports.RouteOperation, req domain.OperationRequest) error {
	for _, op := range ops {
		if err := s.perform(ctx, op, req); err != nil {
			return err
		}
	}
	return nil
}

func (s *dispatchStep) perform(ctx context.Context, op ports.RouteOperation, req domain.OperationRequest) error {
	m := s.manager
	name := op.Name()
	event := &domain.OperationEvent{
		EventBase: domain.EventBase{Timestamp: m.now(), Type: domain.EventOperationStart, StepID: s.id},
		Name:      name,
		Process:   op.ProcessType(),
	}
	if m.hooks.OnOperationStart != nil {
		m.hooks.OnOperationStart(ctx, event)
	}

	start := m.now()
	res, err := op.Perform(ctx, req)
	end := *event
	end.Type = domain.EventOperationEnd
	end.Timestamp = m.now()
	end.Duration = end.Timestamp.Sub(start)
	end.Reroute = res.Reroute
	end.BlockedIDs = res.BlockedIDs
	end.Err = err
	if m.hooks.OnOperationEnd != nil {
		m.hooks.OnOperationEnd(ctx, &end)
	}

	if err != nil {
		m.logger.Error("Route operation failed", "operation", name, "step", s.id, "err", err)
		return &domain.OperationError{
			Operation: name,
			Err:       fmt.Errorf("%w: %w", domain.ErrOperationFailed, err),
		}
	}

	m.logger.Debug("Route operation performed",
		"operation", name,
		"step", s.id,
		"reroute", res.Reroute,
		"blocked", len(res.BlockedIDs),
	)
	s.result.Merge(name, res)
	return nil
}

// feedback records a graph operation that is expected to run from the action
// feedback channel instead of locally.
func (s *dispatchStep) feedback(ctx context.Context, opType string) {
	m := s.manager
	m.logger.Info("Operation should be called from action feedback", "operation", opType, "step", s.id)
	if m.hooks.OnFeedbackOperation != nil {
		m.hooks.OnFeedbackOperation(ctx, &domain.OperationEvent{
			EventBase: domain.EventBase{Timestamp: m.now(), Type: domain.EventFeedbackOperation, StepID: s.id},
			Name:      opType,
			Process:   domain.ProcessOnGraph,
		})
	}
	s.result.MarkTriggered(opType)
}
