// Package settings provides the configuration layer of the ARK resolver.
//
// Configuration comes from two sources with different lifecycles:
//
//   - application settings (hosts, ports, NAAN, registry location) are
//     read from environment variables with the ARK_ prefix, optionally
//     backed by a YAML config file;
//   - the project registry, a YAML document mapping project shortcodes
//     to redirect templates and flags, loaded from a local file or an
//     HTTP URL so deployments can point at a hosted registry.
//
// Registry lookups merge per-project values over registry defaults and
// are case-insensitive on the project shortcode. A *Settings value
// implements the resolution engine's Configuration interface.
package settings
