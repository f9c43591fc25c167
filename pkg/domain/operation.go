package domain

import (
	"fmt"
	"strings"
)

// OperationTrigger identifies the graph event that activates an operation descriptor.
type OperationTrigger string

const (
	// TriggerNode fires when the node carrying the descriptor is reached.
	TriggerNode OperationTrigger = "node"
	// TriggerOnEnter fires when the edge carrying the descriptor is entered.
	TriggerOnEnter OperationTrigger = "on_enter"
	// TriggerOnExit fires when the edge carrying the descriptor is exited.
	TriggerOnExit OperationTrigger = "on_exit"
)

// ParseOperationTrigger converts a textual trigger into an OperationTrigger.
func ParseOperationTrigger(s string) (OperationTrigger, error) {
	switch OperationTrigger(strings.ToLower(strings.TrimSpace(s))) {
	case TriggerNode:
		return TriggerNode, nil
	case TriggerOnEnter:
		return TriggerOnEnter, nil
	case TriggerOnExit:
		return TriggerOnExit, nil
	}
	return "", fmt.Errorf("unknown operation trigger %q", s)
}

// Operation is an operation descriptor embedded on a node or an edge.
type Operation struct {
	// Type references a graph-bound operation by its declared type identifier.
	Type     string           `json:"type" yaml:"type"`
	Trigger  OperationTrigger `json:"trigger" yaml:"trigger"`
	Metadata Metadata         `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ProcessType classifies when an operation plugin runs.
type ProcessType int

const (
	// ProcessOnQuery runs on every dispatch call.
	ProcessOnQuery ProcessType = iota
	// ProcessOnStatusChange runs whenever a node or edge was just reached.
	ProcessOnStatusChange
	// ProcessOnGraph runs when a graph descriptor references it.
	ProcessOnGraph
)

// String returns the configuration name of the process type.
func (p ProcessType) String() string {
	switch p {
	case ProcessOnQuery:
		return "on_query"
	case ProcessOnStatusChange:
		return "on_status_change"
	case ProcessOnGraph:
		return "on_graph"
	default:
		return "unknown"
	}
}

// OperationRequest carries the inputs of a single operation invocation.
// Node and edges are nil when absent.
type OperationRequest struct {
	Node        *Node
	EdgeEntered *Edge
	EdgeExited  *Edge
	Route       *Route
	Pose        Pose

	// Metadata is the triggering descriptor's metadata. Nil for query and
	// status-change operations.
	Metadata Metadata
}

// OperationResult is the outcome of one operation invocation.
type OperationResult struct {
	Reroute    bool     `json:"reroute"`
	BlockedIDs []string `json:"blocked_ids,omitempty"`
}

// OperationsResult is the cumulative outcome of one dispatch call.
type OperationsResult struct {
	Reroute             bool     `json:"reroute"`
	BlockedIDs          []string `json:"blocked_ids"`
	OperationsTriggered []string `json:"operations_triggered"`
}

// NewOperationsResult returns an empty result with non-nil slices.
func NewOperationsResult() OperationsResult {
	return OperationsResult{
		BlockedIDs:          []string{},
		OperationsTriggered: []string{},
	}
}

// Merge folds the result of the named operation into r.
// Blocked IDs are appended in order and never deduplicated. The name is
// recorded even when the operation neither reroutes nor blocks anything.
func (r *OperationsResult) Merge(name string, res OperationResult) {
	r.Reroute = r.Reroute || res.Reroute
	r.BlockedIDs = append(r.BlockedIDs, res.BlockedIDs...)
	r.OperationsTriggered = append(r.OperationsTriggered, name)
}

// MarkTriggered records an operation that was delegated rather than run locally.
func (r *OperationsResult) MarkTriggered(name string) {
	r.OperationsTriggered = append(r.OperationsTriggered, name)
}
