// Package health provides health checks for the ARK resolver host.
//
// Checks cover the resolver's runtime dependencies: the project registry
// (loaded and non-empty) and the optional Redis redirect cache. Each
// check returns a Status; Combine aggregates several statuses into the
// overall state reported by the /health endpoint.
//
//	status := health.Combine(
//	    health.RegistryCheck(s.Registry()),
//	    health.RedisCheck(ctx, cacheClient),
//	)
//	if status.IsUnhealthy() {
//	    log.Println("resolver is not serviceable")
//	}
package health
