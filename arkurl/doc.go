// Package arkurl implements the ARK identifier grammar used by the DSP
// (DaSCH Service Platform) ARK resolver.
//
// Two grammars are supported and must remain supported:
//
//   - Version 1 (current):
//     ark:/<NAAN>/<version>[/<project-id>[/<resource-id>[/<value-id>]]][.<timestamp>]
//   - Version 0 (legacy, PHP-SALSAH era):
//     ark:/<NAAN>/<project-id>-<resource-id>-<discriminator>[.<timestamp>]
//
// Resource and value segments in version 1 identifiers are base64url
// strings carrying a trailing check digit (package checkdigit), with '-'
// escaped as '=' because hyphens are insignificant in ARK identifiers
// and may be inserted or dropped by intermediaries.
//
// The package provides the parsed identifier value object (Info), the
// segment escaper, a NAAN-parameterized Parser for both grammars, and a
// Formatter for the outbound direction (resource IRI to ARK URL).
package arkurl
