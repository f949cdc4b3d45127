package arkurl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	projectIDPattern = `([0-9A-Fa-f]{4})`

	// Escaped resource and value segments. '-' is deliberately absent:
	// escaping has already turned every hyphen into '='.
	encodedSegmentPattern = `([A-Za-z0-9=_]+)`
)

// V1Match holds the structural components of a version 1 ARK identifier.
// The resource and value segments are still escaped and carry their check
// digits; validation happens separately via UnescapeAndValidate.
type V1Match struct {
	Version           uint32
	ProjectID         string
	EscapedResourceID string
	EscapedValueID    string
	Timestamp         string
}

// V0Match holds the components of a legacy (version 0) ARK identifier.
// The timestamp is the raw token from the identifier; callers decide
// whether it is long enough to be meaningful.
type V0Match struct {
	ProjectID  string
	ResourceID string
	Timestamp  string
}

// Parser recognizes both ARK identifier grammars for a fixed NAAN
// (Name Assigning Authority Number). A Parser is immutable and safe for
// concurrent use.
type Parser struct {
	naan             string
	arkPathRegex     *regexp.Regexp
	v0ARKPathRegex   *regexp.Regexp
	resourceIRIRegex *regexp.Regexp
}

// NewParser compiles the identifier grammars for the given NAAN.
func NewParser(naan string) *Parser {
	quoted := regexp.QuoteMeta(naan)

	arkPathPattern := fmt.Sprintf(
		`^ark:/%s/([0-9]+)(?:/%s(?:/%s(?:/%s)?)?)?$`,
		quoted, projectIDPattern, encodedSegmentPattern, encodedSegmentPattern,
	)

	v0ARKPathPattern := fmt.Sprintf(
		`^ark:/%s/%s-([A-Za-z0-9]+)-[A-Za-z0-9]+(?:\.([0-9]{6,8}))?$`,
		quoted, projectIDPattern,
	)

	return &Parser{
		naan:             naan,
		arkPathRegex:     regexp.MustCompile(arkPathPattern),
		v0ARKPathRegex:   regexp.MustCompile(v0ARKPathPattern),
		resourceIRIRegex: regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://[^/]+/` + projectIDPattern + `/([A-Za-z0-9_-]+)$`),
	}
}

// NAAN returns the Name Assigning Authority Number this parser was
// compiled for.
func (p *Parser) NAAN() string {
	return p.naan
}

// ParseV1 matches arkID against the version 1 grammar. The timestamp
// suffix is split off on the first '.' before structural matching, so the
// timestamp token itself is not format-checked here.
func (p *Parser) ParseV1(arkID string) (V1Match, bool) {
	path := arkID
	timestamp := ""
	if dot := strings.IndexByte(arkID, '.'); dot != -1 {
		path = arkID[:dot]
		timestamp = arkID[dot+1:]
	}

	groups := p.arkPathRegex.FindStringSubmatch(path)
	if groups == nil {
		return V1Match{}, false
	}

	version, err := strconv.ParseUint(groups[1], 10, 32)
	if err != nil {
		return V1Match{}, false
	}

	return V1Match{
		Version:           uint32(version),
		ProjectID:         groups[2],
		EscapedResourceID: groups[3],
		EscapedValueID:    groups[4],
		Timestamp:         timestamp,
	}, true
}

// ParseV0 matches arkID against the legacy version 0 grammar.
func (p *Parser) ParseV0(arkID string) (V0Match, bool) {
	groups := p.v0ARKPathRegex.FindStringSubmatch(arkID)
	if groups == nil {
		return V0Match{}, false
	}

	return V0Match{
		ProjectID:  groups[1],
		ResourceID: groups[2],
		Timestamp:  groups[3],
	}, true
}

// UnescapeAndValidateSegment unescapes an identifier segment and validates
// its check digit. It exists so the Parser satisfies the resolution
// engine's parsing capability in one value.
func (p *Parser) UnescapeAndValidateSegment(arkID, escaped string) (string, error) {
	return UnescapeAndValidate(arkID, escaped)
}

// MatchResourceIRI matches an internal resource reference of the shape
// <scheme>://<host>/<project-id>/<resource-id> and extracts the project
// and resource ids. This is the entry point for building an ARK
// identifier from an internal reference.
func (p *Parser) MatchResourceIRI(resourceIRI string) (projectID, resourceID string, ok bool) {
	groups := p.resourceIRIRegex.FindStringSubmatch(resourceIRI)
	if groups == nil {
		return "", "", false
	}
	return groups[1], groups[2], true
}
