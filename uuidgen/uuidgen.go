// Package uuidgen synthesizes stable, current-style resource ids from
// legacy resource ids.
//
// Resources migrated from PHP-SALSAH keep their old hexadecimal ids in
// version 0 ARK identifiers; downstream systems only know the migrated
// ids, which were derived as version 5 (SHA-1, namespace-based) UUIDs of
// the legacy id. The same derivation is reproduced here so the mapping
// stays deterministic: the same legacy id always yields the same
// synthesized id.
package uuidgen

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// Namespace for derived resource ids:
// uuid5(NAMESPACE_URL, "https://dasch.swiss") = cace8b00-717e-50d5-bcb9-486f39d733a2.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://dasch.swiss"))

// Generator produces version 5 UUIDs in the base64url-without-padding
// encoding used by resource ids. The zero value is ready to use.
type Generator struct{}

// GenerateV5 derives the current-style resource id for a legacy id.
func (Generator) GenerateV5(seed string) (string, error) {
	derived := uuid.NewSHA1(namespace, []byte(seed))
	return base64.RawURLEncoding.EncodeToString(derived[:]), nil
}
