// Package template implements the string substitution used by redirect
// templates. Placeholders are written as ${key} or $key, mirroring the
// registry files this resolver has always shipped with.
package template

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var placeholderRegex = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// Engine substitutes placeholder values into templates.
//
// By default substitution is lenient: placeholders with no matching value
// pass through verbatim. This masks missing-configuration mistakes until
// redirect time, so an opt-in Strict mode is available; it fails on the
// first unresolved placeholder instead.
type Engine struct {
	// Strict makes Substitute return an error for unresolved
	// placeholders instead of leaving them in place.
	Strict bool
}

// Substitute replaces every ${key} and $key placeholder in template with
// the corresponding value from values.
func (e Engine) Substitute(template string, values map[string]string) (string, error) {
	var unresolved string

	result := placeholderRegex.ReplaceAllStringFunc(template, func(placeholder string) string {
		key := placeholder[1:]
		key = strings.TrimPrefix(key, "{")
		key = strings.TrimSuffix(key, "}")

		if value, ok := values[key]; ok {
			return value
		}
		if unresolved == "" {
			unresolved = key
		}
		return placeholder
	})

	if e.Strict && unresolved != "" {
		return "", fmt.Errorf("unresolved template placeholder %q in %q", unresolved, template)
	}

	return result, nil
}

// URLEncode percent-encodes a string for embedding as a single URL query
// value, with no characters treated as safe. Spaces become %20, not '+'.
func (e Engine) URLEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
