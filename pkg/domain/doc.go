/*
Package domain contains the core domain models of the route operations engine.

It defines the navigation graph elements an agent traverses, the operation
descriptors embedded on them, the tracking state supplied by the route
follower, and the results operations produce. This package is kept pure and
free of external dependencies like I/O or persistence.

# Key Entities

  - Node / Edge: Graph elements. Each may carry an ordered list of Operations.
  - Operation: A descriptor naming an operation type and the event that triggers it.
  - RouteTrackingState: The follower's view of progress along a Route.
  - OperationResult: The outcome of a single operation invocation.
  - OperationsResult: The merged outcome of one dispatch call.
*/
package domain
