// Package version exposes build metadata for grokker-shim.
//
// Version, Commit and BuildTime are injected at build time via -ldflags and
// default to placeholder values for local builds. UserAgent renders the
// identification sent with outbound HTTP requests.
package version
