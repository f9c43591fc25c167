/*
Package operations provides the built-in route operation plugins.

  - AdjustSpeedLimit (status change): publishes the speed limit of each entered edge.
  - TimeMarker (status change): tags each traversed edge with how long it took.
  - ReroutingService (query): reports an externally requested reroute once.
  - EdgeClosures (query): blocks closed elements that lie ahead on the route.
  - TriggerEvent (graph): publishes an event named by a graph descriptor.

Register adds all of them to a registry so configurations can refer to them by
plugin type.
*/
package operations
