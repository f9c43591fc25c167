package domain

// RouteTrackingState is the route follower's view of progress.
// The dispatch engine only reads it.
type RouteTrackingState struct {
	// LastNode is the last node reached.
	LastNode *Node
	// CurrentEdge is the edge currently being traversed.
	CurrentEdge *Edge
	// RouteEdgesIdx indexes CurrentEdge within Route.Edges.
	RouteEdgesIdx int
}

// ReroutingState is supplied on the step following a reroute.
type ReroutingState struct {
	// CurrentEdge is the edge the agent was traversing when the route was
	// replanned. On the first step of the new route it is reported as exited.
	CurrentEdge *Edge
}
