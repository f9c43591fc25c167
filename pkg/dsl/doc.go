/*
Package dsl provides a fluent builder for constructing navigation graphs in Go.

It is an alternative to graph files for tests, simulations and graphs generated
at runtime:

	b := dsl.New()
	b.Node("dock", 0, 0).Do("TriggerEvent", domain.Metadata{"event": "leaving_dock"})
	b.Node("shelf", 3, 4)
	b.Edge("dock_shelf", "dock", "shelf").
		Meta(domain.KeySpeedLimit, 50).
		OnExit("TriggerEvent", nil)
	b.Route("pick", "dock_shelf")

	g, err := b.Build()
*/
package dsl
