// Package serve implements the HTTP host of the ARK resolver.
//
// The server exposes four surfaces:
//
//   - a catch-all redirect endpoint: any path that looks like an ARK
//     identifier is resolved and answered with a redirect, invalid
//     identifiers get a 400;
//   - GET /convert/<ark-id>: rewrites a legacy identifier as a version 1
//     identifier and returns both forms as JSON;
//   - GET /health: dependency statuses, uptime, and version;
//   - POST /reload: refetches the project registry, guarded by a GitHub
//     webhook signature (enabled only when a secret is configured).
//
// Requests are traced with OpenTelemetry (a span per resolution, with
// the identifier and outcome as attributes) and counted with OTel
// metrics. Completed spans are exported through a slog-backed exporter.
// An optional Redis cache short-circuits repeated resolutions of the
// same identifier.
package serve
