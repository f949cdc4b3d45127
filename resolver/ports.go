package resolver

import "github.com/dasch-swiss/ark-resolver/arkurl"

// IdentifierParser recognizes the ARK identifier grammars and validates
// check-digited segments. *arkurl.Parser satisfies this interface.
type IdentifierParser interface {
	// ParseV1 matches arkID against the version 1 grammar.
	ParseV1(arkID string) (arkurl.V1Match, bool)

	// ParseV0 matches arkID against the legacy version 0 grammar.
	ParseV0(arkID string) (arkurl.V0Match, bool)

	// UnescapeAndValidateSegment unescapes a resource or value segment
	// and validates its check digit, returning the bare identifier.
	UnescapeAndValidateSegment(arkID, escaped string) (string, error)
}

// Configuration provides the per-project settings that drive redirect
// resolution. Implementations must be safe for concurrent use.
type Configuration interface {
	// ARKVersion returns the ARK URL version this deployment serves.
	ARKVersion() uint32

	// TopLevelRedirectURL returns the redirect target for an ARK
	// identifier that carries no project id.
	TopLevelRedirectURL() string

	// AllowsVersion0 reports whether the project accepts legacy
	// version 0 identifiers. Unknown projects report false.
	AllowsVersion0(projectID string) bool

	// UsesPHP reports whether the project is still served by the
	// legacy PHP backend. Unknown projects report false.
	UsesPHP(projectID string) bool

	// ProjectTemplate returns the named template or setting for the
	// project, falling back to registry defaults. It returns an error
	// wrapping ErrProjectNotFound or ErrTemplateNotFound when the
	// lookup fails.
	ProjectTemplate(projectID, key string) (string, error)
}

// TemplateEngine substitutes placeholders in redirect templates.
type TemplateEngine interface {
	Substitute(template string, values map[string]string) (string, error)
	URLEncode(s string) string
}

// UUIDGenerator synthesizes stable resource identifiers from legacy
// identifier seeds.
type UUIDGenerator interface {
	GenerateV5(seed string) (string, error)
}
