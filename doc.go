// Package arkresolver resolves and formats DSP ARK identifiers.
//
// ARK (Archival Resource Key) identifiers are persistent identifiers of
// the shape ark:/<NAAN>/<version>/<project>/<resource>, handed out for
// projects, resources, and values hosted on the DaSCH Service Platform.
// This package is the high-level entry point: it wires the identifier
// parser, the project registry, the redirect resolution engine, and the
// identifier formatter into a single Resolver.
//
// # Core Concepts
//
//   - Identifier levels: an identifier addresses the top-level object, a
//     project, a resource, or a single value of a resource, optionally
//     pinned to a version timestamp.
//   - Check digits: resource and value segments carry a trailing check
//     character so transcription errors are caught before resolution.
//   - Legacy (v0) identifiers: an older grammar kept for backward
//     compatibility; projects opt in per registry entry, and legacy
//     resource ids are mapped to their migrated form deterministically.
//   - Project registry: per-project redirect templates and flags, merged
//     over registry-wide defaults.
//
// # Getting Started
//
//	import (
//		"context"
//
//		arkresolver "github.com/dasch-swiss/ark-resolver"
//		"github.com/dasch-swiss/ark-resolver/settings"
//	)
//
//	s, err := settings.Load(context.Background(), "")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	r, err := arkresolver.New(s)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	redirect, err := r.RedirectURL("ark:/00000/1/0001/cmfk1DMHRBiR4=_6HXpEFAn")
//
// The subpackages can be used on their own: checkdigit implements the
// checksum, arkurl the grammars and formatting, resolver the redirect
// engine over injectable capabilities, settings the configuration layer,
// and serve the HTTP host.
package arkresolver
