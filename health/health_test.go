package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasch-swiss/ark-resolver/settings"
)

func TestRegistryCheck(t *testing.T) {
	t.Run("nil registry", func(t *testing.T) {
		status := RegistryCheck(nil)
		assert.True(t, status.IsUnhealthy())
	})

	t.Run("missing top level default", func(t *testing.T) {
		registry, err := settings.ParseRegistry([]byte("projects:\n  \"0001\": {}\n"))
		require.NoError(t, err)

		status := RegistryCheck(registry)
		assert.True(t, status.IsUnhealthy())
	})

	t.Run("no projects", func(t *testing.T) {
		registry, err := settings.ParseRegistry([]byte("defaults:\n  TopLevelObjectUrl: http://dasch.swiss\n"))
		require.NoError(t, err)

		status := RegistryCheck(registry)
		assert.True(t, status.IsDegraded())
	})

	t.Run("loaded registry", func(t *testing.T) {
		registry, err := settings.ParseRegistry([]byte(
			"defaults:\n  TopLevelObjectUrl: http://dasch.swiss\nprojects:\n  \"0001\": {}\n"))
		require.NoError(t, err)

		status := RegistryCheck(registry)
		assert.True(t, status.IsHealthy())
	})
}

func TestRedisCheckDisabled(t *testing.T) {
	status := RedisCheck(context.Background(), nil)
	assert.True(t, status.IsHealthy())
}

func TestCombine(t *testing.T) {
	assert.True(t, Combine().IsHealthy())

	assert.True(t, Combine(
		NewHealthy("a"),
		NewHealthy("b"),
	).IsHealthy())

	assert.True(t, Combine(
		NewHealthy("a"),
		NewDegraded("slow", nil),
	).IsDegraded())

	assert.True(t, Combine(
		NewDegraded("slow", nil),
		NewUnhealthy("down", nil),
	).IsUnhealthy())
}
