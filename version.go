package routeops

// Version is the release version. Overridden at build time with
// -ldflags "-X github.com/aretw0/routeops.Version=...".
var Version = "0.1.0"
