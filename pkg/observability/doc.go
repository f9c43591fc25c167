/*
Package observability provides Prometheus metrics for the route operations engine.

Metrics are fed through domain.LifecycleHooks, so the engine itself stays free
of any metrics dependency.
*/
package observability
