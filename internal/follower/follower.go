// Package follower drives route operations along a route the way a
// route-following executor does: one status-change step per reached node,
// optional periodic query steps while traversing each edge, and a final step
// at the goal.
package follower

import (
	"context"
	"fmt"
	"math"

	"github.com/aretw0/routeops/pkg/domain"
)

// Processor is the dispatch entry point the follower drives.
type Processor interface {
	Process(
		ctx context.Context,
		statusChange bool,
		state domain.RouteTrackingState,
		route *domain.Route,
		pose domain.Pose,
		rerouting domain.ReroutingState,
	) (domain.OperationsResult, error)
}

// Options tune a simulated traversal.
type Options struct {
	// QueriesPerEdge is the number of tracking updates without status change
	// issued while traversing each edge.
	QueriesPerEdge int
	// Rerouting is passed with every step; it only matters on the first one.
	Rerouting domain.ReroutingState
	FrameID   string
}

// Step is the outcome of one dispatch call.
type Step struct {
	Index        int                     `json:"index"`
	StatusChange bool                    `json:"status_change"`
	NodeID       string                  `json:"node_id,omitempty"`
	EdgeID       string                  `json:"edge_id,omitempty"`
	Pose         domain.Pose             `json:"pose"`
	Result       domain.OperationsResult `json:"result"`
}

// Report summarizes a traversal.
type Report struct {
	Steps []Step `json:"steps"`
	// Completed is set when the goal step ran without a reroute request.
	Completed bool `json:"completed"`
	// Rerouted is set when a step requested a reroute; the traversal stops there.
	Rerouted   bool     `json:"rerouted"`
	BlockedIDs []string `json:"blocked_ids,omitempty"`
}

// StateAt returns the tracking state after reaching the start of edge idx.
// idx == len(route.Edges) is the goal: the last node is reached and no edge is current.
func StateAt(route *domain.Route, idx int) (domain.RouteTrackingState, error) {
	if route == nil || idx < 0 || idx > len(route.Edges) {
		return domain.RouteTrackingState{}, fmt.Errorf("edge index %d out of range", idx)
	}
	if idx == len(route.Edges) {
		return domain.RouteTrackingState{LastNode: route.Goal(), RouteEdgesIdx: idx}, nil
	}
	edge := route.Edges[idx]
	return domain.RouteTrackingState{LastNode: edge.Start, CurrentEdge: edge, RouteEdgesIdx: idx}, nil
}

// Follow walks route from start to goal, calling p at every step, and stops
// early on the first reroute or error.
func Follow(ctx context.Context, p Processor, route *domain.Route, opts Options) (Report, error) {
	report := Report{Steps: []Step{}}
	if route == nil {
		return report, fmt.Errorf("no route to follow")
	}

	for idx := 0; idx <= len(route.Edges); idx++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		state, err := StateAt(route, idx)
		if err != nil {
			return report, err
		}
		pose := poseAlong(state, 0, opts.FrameID)
		if done, err := runStep(ctx, p, &report, true, state, route, pose, opts); done || err != nil {
			return report, err
		}

		if state.CurrentEdge == nil {
			continue
		}
		for q := 1; q <= opts.QueriesPerEdge; q++ {
			frac := float64(q) / float64(opts.QueriesPerEdge+1)
			pose := poseAlong(state, frac, opts.FrameID)
			if done, err := runStep(ctx, p, &report, false, state, route, pose, opts); done || err != nil {
				return report, err
			}
		}
	}

	report.Completed = true
	return report, nil
}

func runStep(
	ctx context.Context,
	p Processor,
	report *Report,
	statusChange bool,
	state domain.RouteTrackingState,
	route *domain.Route,
	pose domain.Pose,
	opts Options,
) (bool, error) {
	res, err := p.Process(ctx, statusChange, state, route, pose, opts.Rerouting)
	if err != nil {
		return true, fmt.Errorf("step %d: %w", len(report.Steps), err)
	}

	step := Step{
		Index:        len(report.Steps),
		StatusChange: statusChange,
		Pose:         pose,
		Result:       res,
	}
	if state.LastNode != nil {
		step.NodeID = state.LastNode.ID
	}
	if state.CurrentEdge != nil {
		step.EdgeID = state.CurrentEdge.ID
	}
	report.Steps = append(report.Steps, step)
	report.BlockedIDs = append(report.BlockedIDs, res.BlockedIDs...)

	if res.Reroute {
		report.Rerouted = true
		return true, nil
	}
	return false, nil
}

// poseAlong interpolates the agent pose a fraction of the way along the current edge.
func poseAlong(state domain.RouteTrackingState, frac float64, frameID string) domain.Pose {
	pose := domain.Pose{FrameID: frameID}
	if state.LastNode != nil {
		pose.X, pose.Y = state.LastNode.X, state.LastNode.Y
	}
	edge := state.CurrentEdge
	if edge == nil || edge.Start == nil || edge.End == nil {
		return pose
	}
	dx, dy := edge.End.X-edge.Start.X, edge.End.Y-edge.Start.Y
	pose.X = edge.Start.X + frac*dx
	pose.Y = edge.Start.Y + frac*dy
	pose.Yaw = math.Atan2(dy, dx)
	return pose
}
