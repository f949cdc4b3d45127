// Package resolver implements the redirect resolution engine for DSP ARK
// identifiers.
//
// The engine turns an ARK identifier string into either a parsed
// [github.com/dasch-swiss/ark-resolver/arkurl.Info] value or a concrete
// redirect URL, driven entirely by per-project configuration. It depends
// on four narrow capabilities (identifier parsing, configuration lookup,
// template substitution, and UUID synthesis) expressed as interfaces, so
// that the HTTP layer, the CLI, and tests can wire it with real or fake
// collaborators.
//
// Resolution is a pure computation: the engine holds no mutable state and
// a single Engine is safe for concurrent use.
package resolver
