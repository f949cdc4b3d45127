package arkresolver

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Resolver.
type Option func(*resolverConfig)

// resolverConfig holds configuration for a Resolver instance.
type resolverConfig struct {
	logger          *slog.Logger
	tracer          trace.Tracer
	strictTemplates bool
}

// WithLogger sets a custom logger for the resolver.
// If not provided, a JSON logger writing to stdout is created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *resolverConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer used by the HTTP host.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *resolverConfig) {
		c.tracer = tracer
	}
}

// WithStrictTemplates makes template substitution fail on unresolved
// placeholders instead of passing them through verbatim. The lenient
// default matches the behavior deployed registries rely on.
func WithStrictTemplates() Option {
	return func(c *resolverConfig) {
		c.strictTemplates = true
	}
}
