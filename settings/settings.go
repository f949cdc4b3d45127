package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/dasch-swiss/ark-resolver/resolver"
)

// Settings bundles the application config and the project registry and
// implements the resolution engine's Configuration interface. The
// registry can be swapped at runtime via ReloadRegistry; all accessors
// are safe for concurrent use.
type Settings struct {
	cfg *Config

	mu       sync.RWMutex
	registry *Registry
}

var _ resolver.Configuration = (*Settings)(nil)

// New creates Settings from an already loaded config and registry.
func New(cfg *Config, registry *Registry) (*Settings, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	return &Settings{cfg: cfg, registry: registry}, nil
}

// Load reads the application config and then the registry it points at.
func Load(ctx context.Context, configPath string) (*Settings, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	registry, err := LoadRegistry(ctx, cfg.Registry)
	if err != nil {
		return nil, err
	}

	return New(cfg, registry)
}

// Config returns the application config.
func (s *Settings) Config() *Config {
	return s.cfg
}

// Registry returns the current project registry.
func (s *Settings) Registry() *Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// ReloadRegistry refetches the registry from its configured source and
// swaps it in. On failure the previous registry stays in effect.
func (s *Settings) ReloadRegistry(ctx context.Context) error {
	registry, err := LoadRegistry(ctx, s.cfg.Registry)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.registry = registry
	s.mu.Unlock()
	return nil
}

// ARKVersion returns the ARK URL version this deployment serves.
func (s *Settings) ARKVersion() uint32 {
	return s.cfg.ARKVersion
}

// TopLevelRedirectURL returns the redirect target for identifiers that
// carry no project id.
func (s *Settings) TopLevelRedirectURL() string {
	url, _ := s.Registry().Default("TopLevelObjectUrl")
	return url
}

// AllowsVersion0 reports whether the project accepts legacy identifiers.
func (s *Settings) AllowsVersion0(projectID string) bool {
	return s.Registry().Flag(projectID, "AllowVersion0")
}

// UsesPHP reports whether the project is served by the legacy PHP
// backend.
func (s *Settings) UsesPHP(projectID string) bool {
	return s.Registry().Flag(projectID, "UsePhp")
}

// ProjectTemplate returns the named template or setting for the project.
func (s *Settings) ProjectTemplate(projectID, key string) (string, error) {
	return s.Registry().Template(projectID, key)
}
