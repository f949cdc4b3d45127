package arkurl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidResourceIRI indicates a resource reference that does not match
// the <scheme>://<host>/<project-id>/<resource-id> shape.
var ErrInvalidResourceIRI = errors.New("invalid resource IRI")

// FormatterConfig configures a Formatter.
type FormatterConfig struct {
	// Parser supplies the resource IRI grammar. Required.
	Parser *Parser

	// ExternalHost is the public host of the ARK resolver, used when
	// formatting full ARK URLs.
	ExternalHost string

	// UseHTTPS selects the scheme of formatted ARK URLs.
	UseHTTPS bool

	// Version is the current ARK URL version written into identifiers.
	Version uint32
}

// Formatter builds ARK identifiers and URLs from internal resource
// references. It is immutable and safe for concurrent use.
type Formatter struct {
	cfg FormatterConfig
}

// NewFormatter creates a Formatter from the given configuration.
func NewFormatter(cfg FormatterConfig) *Formatter {
	return &Formatter{cfg: cfg}
}

// ResourceIRIToARKURL converts a resource IRI to a full ARK URL,
// optionally addressing a value and a version timestamp. The resource and
// value ids are check-digited and escaped; the caller passes them raw.
func (f *Formatter) ResourceIRIToARKURL(resourceIRI, valueID, timestamp string) (string, error) {
	projectID, resourceID, ok := f.cfg.Parser.MatchResourceIRI(resourceIRI)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidResourceIRI, resourceIRI)
	}

	escapedResourceID, err := AddCheckDigitAndEscape(resourceID)
	if err != nil {
		return "", err
	}

	escapedValueID := ""
	if valueID != "" {
		escapedValueID, err = AddCheckDigitAndEscape(valueID)
		if err != nil {
			return "", err
		}
	}

	return f.FormatARKURL(projectID, escapedResourceID, escapedValueID, timestamp), nil
}

// ResourceIRIToARKID converts a resource IRI to a bare ARK identifier
// (without the HTTP URL wrapper), optionally with a version timestamp.
func (f *Formatter) ResourceIRIToARKID(resourceIRI, timestamp string) (string, error) {
	projectID, resourceID, ok := f.cfg.Parser.MatchResourceIRI(resourceIRI)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidResourceIRI, resourceIRI)
	}

	escapedResourceID, err := AddCheckDigitAndEscape(resourceID)
	if err != nil {
		return "", err
	}

	return f.FormatARKID(projectID, escapedResourceID, timestamp), nil
}

// PHPResourceToARKURL builds a full ARK URL for a resource that still
// lives on the legacy PHP backend, identified by its integer id. The
// hexadecimal resource id embedded in the identifier is derived from the
// integer id, so the mapping is reversible at resolution time.
func (f *Formatter) PHPResourceToARKURL(phpResourceID int64, projectID, timestamp string) (string, error) {
	hexID := strconv.FormatInt((phpResourceID+1)*982451653, 16)

	escapedResourceID, err := AddCheckDigitAndEscape(hexID)
	if err != nil {
		return "", err
	}

	return f.FormatARKURL(projectID, escapedResourceID, "", timestamp), nil
}

// FormatARKURL assembles a full ARK URL from already escaped components.
// The formatter does not re-derive check digits; escape segments with
// AddCheckDigitAndEscape first.
func (f *Formatter) FormatARKURL(projectID, escapedResourceID, escapedValueID, timestamp string) string {
	scheme := "http"
	if f.cfg.UseHTTPS {
		scheme = "https"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s://%s/ark:/%s/%d/%s/%s",
		scheme, f.cfg.ExternalHost, f.cfg.Parser.NAAN(), f.cfg.Version, projectID, escapedResourceID)

	if escapedValueID != "" {
		b.WriteByte('/')
		b.WriteString(escapedValueID)
	}
	if timestamp != "" {
		b.WriteByte('.')
		b.WriteString(timestamp)
	}

	return b.String()
}

// FormatARKID assembles a bare ARK identifier from already escaped
// components.
func (f *Formatter) FormatARKID(projectID, escapedResourceID, timestamp string) string {
	arkID := fmt.Sprintf("ark:/%s/%d/%s/%s",
		f.cfg.Parser.NAAN(), f.cfg.Version, projectID, escapedResourceID)

	if timestamp != "" {
		arkID += "." + timestamp
	}

	return arkID
}
