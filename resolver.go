package arkresolver

import (
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"

	"github.com/dasch-swiss/ark-resolver/arkurl"
	"github.com/dasch-swiss/ark-resolver/resolver"
	"github.com/dasch-swiss/ark-resolver/settings"
	"github.com/dasch-swiss/ark-resolver/template"
	"github.com/dasch-swiss/ark-resolver/uuidgen"
)

// Resolver is the high-level entry point: it bundles the identifier
// parser, the redirect resolution engine, and the identifier formatter
// configured from a single Settings value.
//
// Example:
//
//	r, err := arkresolver.New(s, arkresolver.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	redirect, err := r.RedirectURL("ark:/00000/1/0003")
type Resolver struct {
	settings  *settings.Settings
	parser    *arkurl.Parser
	formatter *arkurl.Formatter
	engine    *resolver.Engine
	uuids     uuidgen.Generator
	logger    *slog.Logger
	tracer    trace.Tracer
}

// New creates a Resolver from loaded settings.
func New(s *settings.Settings, opts ...Option) (*Resolver, error) {
	if s == nil {
		return nil, fmt.Errorf("settings are required")
	}

	cfg := &resolverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	appCfg := s.Config()
	parser := arkurl.NewParser(appCfg.NAAN)

	formatter := arkurl.NewFormatter(arkurl.FormatterConfig{
		Parser:       parser,
		ExternalHost: appCfg.ExternalHost,
		UseHTTPS:     appCfg.HTTPSProxy,
		Version:      appCfg.ARKVersion,
	})

	engine, err := resolver.NewEngine(resolver.EngineConfig{
		Parser:    parser,
		Config:    s,
		Templates: template.Engine{Strict: cfg.strictTemplates},
		UUIDs:     uuidgen.Generator{},
		Logger:    cfg.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Resolver{
		settings:  s,
		parser:    parser,
		formatter: formatter,
		engine:    engine,
		logger:    cfg.logger,
		tracer:    cfg.tracer,
	}, nil
}

// Settings returns the settings the resolver was built from.
func (r *Resolver) Settings() *settings.Settings {
	return r.settings
}

// Engine returns the redirect resolution engine.
func (r *Resolver) Engine() *resolver.Engine {
	return r.engine
}

// Formatter returns the identifier formatter.
func (r *Resolver) Formatter() *arkurl.Formatter {
	return r.formatter
}

// Logger returns the resolver's logger.
func (r *Resolver) Logger() *slog.Logger {
	return r.logger
}

// Tracer returns the tracer set via WithTracer, or nil.
func (r *Resolver) Tracer() trace.Tracer {
	return r.tracer
}

// Parse parses and validates an ARK identifier.
func (r *Resolver) Parse(arkID string) (arkurl.Info, error) {
	return r.engine.Parse(arkID)
}

// RedirectURL parses arkID and computes its redirect target.
func (r *Resolver) RedirectURL(arkID string) (string, error) {
	return r.engine.Resolve(arkID)
}

// ResourceIRI parses arkID and computes the internal resource IRI it
// addresses.
func (r *Resolver) ResourceIRI(arkID string) (string, error) {
	info, err := r.engine.Parse(arkID)
	if err != nil {
		return "", err
	}
	return r.engine.ResourceIRI(info)
}

// ARKURL builds a full ARK URL for a resource IRI, optionally addressing
// a value and a version timestamp.
func (r *Resolver) ARKURL(resourceIRI, valueID, timestamp string) (string, error) {
	return r.formatter.ResourceIRIToARKURL(resourceIRI, valueID, timestamp)
}

// ARKID builds a bare ARK identifier for a resource IRI.
func (r *Resolver) ARKID(resourceIRI, timestamp string) (string, error) {
	return r.formatter.ResourceIRIToARKID(resourceIRI, timestamp)
}

// ConvertToV1 rewrites a resource identifier as a version 1 identifier.
// Legacy resource ids are replaced with their migrated form and
// date-only timestamps are normalized to the version 1 format. Version 1
// input comes back in canonical form; a value identifier is converted to
// the identifier of its resource.
func (r *Resolver) ConvertToV1(arkID string) (string, error) {
	info, err := r.engine.Parse(arkID)
	if err != nil {
		return "", err
	}

	if info.ResourceID == "" {
		return "", resolver.NewValidationError("Resolver.ConvertToV1",
			fmt.Errorf("identifier does not address a resource"))
	}

	resourceID := info.ResourceID
	if info.IsVersion0() {
		resourceID, err = r.uuids.GenerateV5(info.ResourceID)
		if err != nil {
			return "", resolver.NewInternalError("Resolver.ConvertToV1", err)
		}
	}

	escaped, err := arkurl.AddCheckDigitAndEscape(resourceID)
	if err != nil {
		return "", err
	}

	return r.formatter.FormatARKID(info.ProjectID, escaped, info.NormalizedTimestamp()), nil
}
