/*
Package routeops dispatches route operations while an agent follows a route
through a navigation graph.

Operations are pluggable units of behavior created from configuration. Each one
declares when it runs:

  - on_query: on every tracking update.
  - on_status_change: when a node is reached or an edge is entered or exited.
  - on_graph: when the graph itself attaches a descriptor of the operation's
    type to the node or edges involved in a status change.

Graph descriptors whose type no configured operation answers to are forwarded
to the lifecycle hooks as feedback operations, unless feedback is disabled, in
which case the step fails.

# Usage

	cfg, err := config.Load("operations.yaml")
	if err != nil {
		log.Fatal(err)
	}

	eng, err := routeops.New(ctx, cfg, routeops.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Process(ctx, true, state, route, pose, domain.ReroutingState{})
	if err != nil {
		log.Fatal(err)
	}
	if res.Reroute {
		// plan a new route avoiding res.BlockedIDs
	}

The built-in operations live in pkg/operations; custom plugins are added to a
pkg/registry.Registry passed with WithRegistry.
*/
package routeops
