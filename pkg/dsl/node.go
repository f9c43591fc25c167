package dsl

import "github.com/aretw0/routeops/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node domain.Node
}

// Do attaches an operation descriptor run when the node is reached.
func (n *NodeBuilder) Do(opType string, metadata domain.Metadata) *NodeBuilder {
	n.node.Operations = append(n.node.Operations, domain.Operation{
		Type:     opType,
		Trigger:  domain.TriggerNode,
		Metadata: metadata,
	})
	return n
}

// Meta sets a metadata value on the node.
func (n *NodeBuilder) Meta(key string, value any) *NodeBuilder {
	if n.node.Metadata == nil {
		n.node.Metadata = domain.Metadata{}
	}
	n.node.Metadata[key] = value
	return n
}

// EdgeBuilder provides a fluent API for configuring an edge.
type EdgeBuilder struct {
	id         string
	start      string
	end        string
	operations []domain.Operation
	metadata   domain.Metadata
}

// OnEnter attaches an operation descriptor run when the edge is entered.
func (e *EdgeBuilder) OnEnter(opType string, metadata domain.Metadata) *EdgeBuilder {
	return e.attach(opType, domain.TriggerOnEnter, metadata)
}

// OnExit attaches an operation descriptor run when the edge is exited.
func (e *EdgeBuilder) OnExit(opType string, metadata domain.Metadata) *EdgeBuilder {
	return e.attach(opType, domain.TriggerOnExit, metadata)
}

// Meta sets a metadata value on the edge, e.g. its speed limit.
func (e *EdgeBuilder) Meta(key string, value any) *EdgeBuilder {
	if e.metadata == nil {
		e.metadata = domain.Metadata{}
	}
	e.metadata[key] = value
	return e
}

func (e *EdgeBuilder) attach(opType string, trigger domain.OperationTrigger, metadata domain.Metadata) *EdgeBuilder {
	e.operations = append(e.operations, domain.Operation{
		Type:     opType,
		Trigger:  trigger,
		Metadata: metadata,
	})
	return e
}
