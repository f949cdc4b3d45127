package settings

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application-level settings of the resolver, as opposed
// to the per-project registry. Every field can be set through an ARK_
// environment variable (e.g. ARK_EXTERNAL_HOST) or an optional YAML
// config file.
type Config struct {
	// ExternalHost is the public host name ARK URLs are formatted with.
	ExternalHost string `mapstructure:"external_host"`

	// InternalHost and InternalPort are the listen address of the HTTP
	// server.
	InternalHost string `mapstructure:"internal_host"`
	InternalPort int    `mapstructure:"internal_port"`

	// NAAN is the Name Assigning Authority Number of this deployment.
	NAAN string `mapstructure:"naan"`

	// HTTPSProxy selects https as the scheme of formatted ARK URLs.
	HTTPSProxy bool `mapstructure:"https_proxy"`

	// ARKVersion is the ARK URL version this deployment serves.
	ARKVersion uint32 `mapstructure:"ark_version"`

	// Registry is the location of the project registry, either a local
	// file path or an http(s) URL.
	Registry string `mapstructure:"registry"`

	// GitHubSecret verifies registry reload webhooks. Empty disables
	// the reload endpoint.
	GitHubSecret string `mapstructure:"github_secret"`

	// LogLevel is the minimum slog level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// RedisAddr enables the redirect cache when non-empty.
	RedisAddr string `mapstructure:"redis_addr"`

	// RedisTTL is the lifetime of cached redirects.
	RedisTTL time.Duration `mapstructure:"redis_ttl"`
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.InternalHost, c.InternalPort)
}

// LoadConfig reads the application settings. configPath, when non-empty,
// is a directory searched for an optional ark-config.yaml; environment
// variables override file values, defaults fill the rest.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("ark-config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("ARK")
	v.AutomaticEnv()

	v.SetDefault("external_host", "ark.example.org")
	v.SetDefault("internal_host", "0.0.0.0")
	v.SetDefault("internal_port", 3336)
	v.SetDefault("naan", "00000")
	v.SetDefault("https_proxy", true)
	v.SetDefault("ark_version", 1)
	v.SetDefault("registry", "ark-registry.yaml")
	v.SetDefault("github_secret", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_ttl", "1h")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file; environment variables and defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
