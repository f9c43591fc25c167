/*
Package ports defines the interfaces between the route operations engine and
its plugins and infrastructure.

# Key Interfaces

  - RouteOperation: A configured operation plugin the engine dispatches to.
  - OperationFactory: Creates operation plugins by plugin type (see pkg/registry).
  - GraphLoader: Provides the navigation graph (e.g., from a YAML file or memory).
  - ClosureStore: Tracks graph elements closed to traffic.
  - Publisher: Delivers messages emitted by operations (speed limits, events).
*/
package ports
