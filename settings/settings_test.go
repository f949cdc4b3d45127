package settings_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasch-swiss/ark-resolver/resolver"
	"github.com/dasch-swiss/ark-resolver/settings"
)

const registryFixture = "testdata/ark-registry.yaml"

func loadTestRegistry(t *testing.T) *settings.Registry {
	t.Helper()

	registry, err := settings.LoadRegistry(context.Background(), registryFixture)
	require.NoError(t, err)
	return registry
}

func TestRegistryTemplateMerging(t *testing.T) {
	registry := loadTestRegistry(t)

	// Project value overrides the default.
	host, err := registry.Template("0004", "ProjectHost")
	require.NoError(t, err)
	assert.Equal(t, "other-meta.dasch.swiss", host)

	// Unset project values fall back to the defaults.
	host, err = registry.Template("0003", "ProjectHost")
	require.NoError(t, err)
	assert.Equal(t, "meta.dasch.swiss", host)

	host, err = registry.Template("0803", "Host")
	require.NoError(t, err)
	assert.Equal(t, "data.dasch.swiss", host)
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	registry := loadTestRegistry(t)

	for _, projectID := range []string{"080e", "080E"} {
		host, err := registry.Template(projectID, "Host")
		require.NoError(t, err)
		assert.Equal(t, "app.dasch.swiss", host)
		assert.True(t, registry.Flag(projectID, "AllowVersion0"))
	}
}

func TestRegistryUnknownProject(t *testing.T) {
	registry := loadTestRegistry(t)

	_, err := registry.Template("ffff", "Host")
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrProjectNotFound)
}

func TestRegistryMissingTemplate(t *testing.T) {
	registry := loadTestRegistry(t)

	_, err := registry.Template("0001", "NoSuchTemplate")
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrTemplateNotFound)
}

func TestRegistryFlags(t *testing.T) {
	registry := loadTestRegistry(t)

	assert.True(t, registry.Flag("0002", "AllowVersion0"))
	assert.False(t, registry.Flag("0001", "AllowVersion0"))
	assert.True(t, registry.Flag("0803", "UsePhp"))
	assert.False(t, registry.Flag("0002", "UsePhp"))
	assert.False(t, registry.Flag("ffff", "AllowVersion0"))
}

func TestParseRegistryRejectsInvalidYAML(t *testing.T) {
	_, err := settings.ParseRegistry([]byte("defaults: [not, a, map]"))
	require.Error(t, err)
}

func TestLoadRegistryFromHTTP(t *testing.T) {
	data, err := os.ReadFile(registryFixture)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer server.Close()

	registry, err := settings.LoadRegistry(context.Background(), server.URL)
	require.NoError(t, err)

	host, err := registry.Template("0001", "Host")
	require.NoError(t, err)
	assert.Equal(t, "app.dasch.swiss", host)
}

func TestLoadRegistryFromHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := settings.LoadRegistry(context.Background(), server.URL)
	require.Error(t, err)
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := settings.LoadRegistry(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := settings.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "ark.example.org", cfg.ExternalHost)
	assert.Equal(t, "0.0.0.0", cfg.InternalHost)
	assert.Equal(t, 3336, cfg.InternalPort)
	assert.Equal(t, "00000", cfg.NAAN)
	assert.True(t, cfg.HTTPSProxy)
	assert.Equal(t, uint32(1), cfg.ARKVersion)
	assert.Equal(t, "0.0.0.0:3336", cfg.ListenAddr())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("ARK_EXTERNAL_HOST", "ark.dasch.swiss")
	t.Setenv("ARK_NAAN", "99999")
	t.Setenv("ARK_INTERNAL_PORT", "8080")
	t.Setenv("ARK_HTTPS_PROXY", "false")

	cfg, err := settings.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "ark.dasch.swiss", cfg.ExternalHost)
	assert.Equal(t, "99999", cfg.NAAN)
	assert.Equal(t, 8080, cfg.InternalPort)
	assert.False(t, cfg.HTTPSProxy)
}

func TestSettingsConfigurationPort(t *testing.T) {
	cfg, err := settings.LoadConfig(t.TempDir())
	require.NoError(t, err)

	s, err := settings.New(cfg, loadTestRegistry(t))
	require.NoError(t, err)

	assert.Equal(t, uint32(1), s.ARKVersion())
	assert.Equal(t, "http://dasch.swiss", s.TopLevelRedirectURL())
	assert.True(t, s.AllowsVersion0("0002"))
	assert.False(t, s.AllowsVersion0("0001"))
	assert.True(t, s.UsesPHP("0803"))

	template, err := s.ProjectTemplate("0005", "ResourceRedirectUrl")
	require.NoError(t, err)
	assert.Equal(t, "http://$host/resources/$project_id/$resource_id", template)
}
