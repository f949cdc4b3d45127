package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dasch-swiss/ark-resolver/arkurl"
)

// Registry keys for per-project settings and redirect templates.
const (
	keyHost                          = "Host"
	keyProjectHost                   = "ProjectHost"
	keyResourceIRI                   = "ResourceIri"
	keyProjectIRI                    = "ProjectIri"
	keyProjectRedirectURL            = "ProjectRedirectUrl"
	keyResourceRedirectURL           = "ResourceRedirectUrl"
	keyResourceVersionRedirectURL    = "ResourceVersionRedirectUrl"
	keyValueRedirectURL              = "ValueRedirectUrl"
	keyValueVersionRedirectURL       = "ValueVersionRedirectUrl"
	keyPhpResourceRedirectURL        = "PhpResourceRedirectUrl"
	keyPhpResourceVersionRedirectURL = "PhpResourceVersionRedirectUrl"
)

// Divisor used to recover a legacy PHP resource's integer id from the
// hexadecimal id embedded in version 0 identifiers.
const phpResourceIDDivisor = 982451653

// EngineConfig bundles the collaborators an Engine needs.
type EngineConfig struct {
	// Parser recognizes identifier grammars. Required.
	Parser IdentifierParser

	// Config provides per-project settings. Required.
	Config Configuration

	// Templates substitutes redirect templates. Required.
	Templates TemplateEngine

	// UUIDs synthesizes resource ids for legacy identifiers. Required.
	UUIDs UUIDGenerator

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// Engine resolves ARK identifiers to redirect URLs and resource IRIs.
//
// Example usage:
//
//	engine, err := resolver.NewEngine(resolver.EngineConfig{
//		Parser:    arkurl.NewParser(cfg.ARKNAAN()),
//		Config:    cfg,
//		Templates: template.Engine{},
//		UUIDs:     uuidgen.Generator{},
//	})
//	if err != nil {
//		return err
//	}
//
//	info, err := engine.Parse("ark:/00000/1/0001/cmfk1DMHRBiR4=_6HXpEFAn")
//	if err != nil {
//		return err
//	}
//
//	redirect, err := engine.RedirectURL(info)
type Engine struct {
	parser    IdentifierParser
	config    Configuration
	templates TemplateEngine
	uuids     UUIDGenerator
	logger    *slog.Logger
}

// NewEngine validates the configuration and creates an Engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	const op = "NewEngine"

	if cfg.Parser == nil {
		return nil, NewConfigurationError(op, fmt.Errorf("parser is required"))
	}
	if cfg.Config == nil {
		return nil, NewConfigurationError(op, fmt.Errorf("configuration is required"))
	}
	if cfg.Templates == nil {
		return nil, NewConfigurationError(op, fmt.Errorf("template engine is required"))
	}
	if cfg.UUIDs == nil {
		return nil, NewConfigurationError(op, fmt.Errorf("uuid generator is required"))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		parser:    cfg.Parser,
		config:    cfg.Config,
		templates: cfg.Templates,
		uuids:     cfg.UUIDs,
		logger:    logger,
	}, nil
}

// Parse recognizes arkID against the version 1 grammar first and the
// legacy version 0 grammar second, validating check digits and project
// permissions along the way.
//
// Version 1 identifiers must carry the deployment's ARK URL version.
// Version 0 identifiers are only accepted for projects that allow them;
// their project id is uppercased and a timestamp shorter than a full
// date is dropped.
func (e *Engine) Parse(arkID string) (arkurl.Info, error) {
	const op = "Engine.Parse"

	if m, ok := e.parser.ParseV1(arkID); ok {
		if m.Version != e.config.ARKVersion() {
			return arkurl.Info{}, NewValidationError(op,
				fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, m.Version, e.config.ARKVersion()))
		}

		info := arkurl.Info{
			Version:   m.Version,
			ProjectID: m.ProjectID,
			Timestamp: m.Timestamp,
		}

		if m.EscapedResourceID != "" {
			resourceID, err := e.parser.UnescapeAndValidateSegment(arkID, m.EscapedResourceID)
			if err != nil {
				return arkurl.Info{}, NewValidationError(op, err)
			}
			info.ResourceID = resourceID
		}

		if m.EscapedValueID != "" {
			valueID, err := e.parser.UnescapeAndValidateSegment(arkID, m.EscapedValueID)
			if err != nil {
				return arkurl.Info{}, NewValidationError(op, err)
			}
			info.ValueID = valueID
		}

		return info, nil
	}

	if m, ok := e.parser.ParseV0(arkID); ok {
		projectID := strings.ToUpper(m.ProjectID)

		if !e.config.AllowsVersion0(projectID) {
			return arkurl.Info{}, NewValidationError(op,
				fmt.Errorf("%w: project %s", ErrVersion0NotAllowed, projectID))
		}

		timestamp := m.Timestamp
		if len(timestamp) < 8 {
			// A partial date cannot be resolved to a version.
			timestamp = ""
		}

		return arkurl.Info{
			Version:    0,
			ProjectID:  projectID,
			ResourceID: m.ResourceID,
			Timestamp:  timestamp,
		}, nil
	}

	return arkurl.Info{}, NewValidationError(op, fmt.Errorf("%w: %q", arkurl.ErrInvalidARKID, arkID))
}

// Resolve parses arkID and returns its redirect URL in one step.
func (e *Engine) Resolve(arkID string) (string, error) {
	info, err := e.Parse(arkID)
	if err != nil {
		return "", err
	}
	return e.RedirectURL(info)
}

// RedirectURL computes the redirect target for a parsed identifier.
//
// Identifiers without a project id redirect to the top-level object URL.
// Resource identifiers of projects still served by the legacy PHP
// backend take the PHP redirect templates; everything else takes the
// DSP redirect templates.
func (e *Engine) RedirectURL(info arkurl.Info) (string, error) {
	const op = "Engine.RedirectURL"

	if info.ProjectID == "" {
		return e.config.TopLevelRedirectURL(), nil
	}

	var (
		redirect string
		err      error
	)

	if e.config.UsesPHP(info.ProjectID) && info.ResourceID != "" {
		redirect, err = e.phpRedirectURL(op, info)
	} else {
		redirect, err = e.DSPRedirectURL(info)
	}
	if err != nil {
		return "", err
	}

	e.logger.Debug("resolved redirect",
		"project_id", info.ProjectID,
		"url_version", info.Version,
		"redirect", redirect)

	return redirect, nil
}

// ResourceIRI computes the internal resource IRI for a resource or value
// identifier. For legacy identifiers the hexadecimal resource id is first
// converted to its migrated form.
func (e *Engine) ResourceIRI(info arkurl.Info) (string, error) {
	const op = "Engine.ResourceIRI"

	if info.ResourceID == "" {
		return "", NewValidationError(op, fmt.Errorf("identifier does not address a resource"))
	}

	dict := info.TemplateDict()

	if info.IsVersion0() {
		resourceID, err := e.uuids.GenerateV5(info.ResourceID)
		if err != nil {
			return "", NewInternalError(op, err)
		}
		dict["resource_id"] = resourceID
	}

	iriTemplate, err := e.config.ProjectTemplate(info.ProjectID, keyResourceIRI)
	if err != nil {
		return "", e.configError(op, err)
	}

	iri, err := e.templates.Substitute(iriTemplate, dict)
	if err != nil {
		return "", NewConfigurationError(op, err)
	}

	return iri, nil
}

// DSPRedirectURL computes the redirect target for a project, resource or
// value identifier using the DSP redirect templates. The identifier must
// carry a project id.
func (e *Engine) DSPRedirectURL(info arkurl.Info) (string, error) {
	const op = "Engine.DSPRedirectURL"

	if info.ProjectID == "" {
		return "", NewValidationError(op, ErrProjectIDRequired)
	}

	dict := info.TemplateDict()

	host, err := e.config.ProjectTemplate(info.ProjectID, keyHost)
	if err != nil {
		return "", e.configError(op, err)
	}
	dict["host"] = host

	if info.IsProjectLevel() {
		projectHost, err := e.config.ProjectTemplate(info.ProjectID, keyProjectHost)
		if err != nil {
			return "", e.configError(op, err)
		}
		dict["project_host"] = projectHost
	} else {
		if info.IsVersion0() {
			resourceID, err := e.uuids.GenerateV5(info.ResourceID)
			if err != nil {
				return "", NewInternalError(op, err)
			}
			dict["resource_id"] = resourceID
		}

		resourceIRI, err := e.substituteProjectTemplate(op, info.ProjectID, keyResourceIRI, dict)
		if err != nil {
			return "", err
		}
		dict["resource_iri"] = e.templates.URLEncode(resourceIRI)
	}

	projectIRI, err := e.substituteProjectTemplate(op, info.ProjectID, keyProjectIRI, dict)
	if err != nil {
		return "", err
	}
	dict["project_iri"] = e.templates.URLEncode(projectIRI)

	var key string
	switch {
	case info.IsProjectLevel():
		key = keyProjectRedirectURL
	case info.IsValueLevel() && info.HasTimestamp():
		key = keyValueVersionRedirectURL
	case info.IsValueLevel():
		key = keyValueRedirectURL
	case info.IsResourceLevel() && info.HasTimestamp():
		key = keyResourceVersionRedirectURL
	case info.IsResourceLevel():
		key = keyResourceRedirectURL
	default:
		return "", NewInternalError(op, ErrRedirectTemplateUndetermined)
	}

	return e.substituteProjectTemplate(op, info.ProjectID, key, dict)
}

func (e *Engine) phpRedirectURL(op string, info arkurl.Info) (string, error) {
	resourceValue, err := strconv.ParseInt(info.ResourceID, 16, 64)
	if err != nil {
		return "", NewValidationError(op,
			fmt.Errorf("resource id %q is not a legacy hexadecimal id: %w", info.ResourceID, err))
	}
	resourceIntID := resourceValue/phpResourceIDDivisor - 1

	dict := info.TemplateDict()
	dict["resource_int_id"] = strconv.FormatInt(resourceIntID, 10)

	host, err := e.config.ProjectTemplate(info.ProjectID, keyHost)
	if err != nil {
		return "", e.configError(op, err)
	}
	dict["host"] = host

	key := keyPhpResourceRedirectURL
	if info.HasTimestamp() {
		key = keyPhpResourceVersionRedirectURL
		// The PHP backend takes a citation date, not a full timestamp.
		if len(info.Timestamp) > 8 {
			dict["timestamp"] = info.Timestamp[:8]
		}
	}

	return e.substituteProjectTemplate(op, info.ProjectID, key, dict)
}

func (e *Engine) substituteProjectTemplate(op, projectID, key string, dict map[string]string) (string, error) {
	tmpl, err := e.config.ProjectTemplate(projectID, key)
	if err != nil {
		return "", e.configError(op, err)
	}

	result, err := e.templates.Substitute(tmpl, dict)
	if err != nil {
		return "", NewConfigurationError(op, fmt.Errorf("template %s: %w", key, err))
	}

	return result, nil
}

func (e *Engine) configError(op string, err error) *Error {
	if errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrTemplateNotFound) {
		return NewNotFoundError(op, err)
	}
	return NewConfigurationError(op, err)
}
