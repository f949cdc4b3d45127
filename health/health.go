package health

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dasch-swiss/ark-resolver/settings"
)

// RegistryCheck verifies that the project registry is loaded and usable:
// it must define a top-level redirect target and at least one project.
func RegistryCheck(registry *settings.Registry) Status {
	if registry == nil {
		return NewUnhealthy("project registry not loaded", nil)
	}

	if _, ok := registry.Default("TopLevelObjectUrl"); !ok {
		return NewUnhealthy("registry defines no TopLevelObjectUrl default", nil)
	}

	projects := registry.ProjectIDs()
	if len(projects) == 0 {
		return NewDegraded("registry contains no projects", nil)
	}

	return NewHealthy(fmt.Sprintf("registry loaded with %d projects", len(projects)))
}

// RedisCheck verifies connectivity to the redirect cache. A nil client
// means the cache is disabled, which is healthy.
func RedisCheck(ctx context.Context, client *redis.Client) Status {
	if client == nil {
		return NewHealthy("redirect cache disabled")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// The cache is an optimization: losing it degrades, it does
		// not take the resolver down.
		return NewDegraded("redirect cache unreachable", map[string]any{
			"error": err.Error(),
		})
	}

	return NewHealthy("redirect cache reachable")
}

// Combine aggregates multiple statuses into a single one. Any unhealthy
// check makes the result unhealthy; otherwise any degraded check makes
// it degraded; otherwise it is healthy.
func Combine(checks ...Status) Status {
	if len(checks) == 0 {
		return NewHealthy("no checks provided")
	}

	var unhealthy, degraded []string
	for _, check := range checks {
		switch {
		case check.IsUnhealthy():
			unhealthy = append(unhealthy, check.Message)
		case check.IsDegraded():
			degraded = append(degraded, check.Message)
		}
	}

	switch {
	case len(unhealthy) > 0:
		return NewUnhealthy(strings.Join(unhealthy, "; "), nil)
	case len(degraded) > 0:
		return NewDegraded(strings.Join(degraded, "; "), nil)
	default:
		return NewHealthy("all checks passed")
	}
}
