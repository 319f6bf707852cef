// Package config defines the grokker-shim settings and helpers to load,
// validate and save them in YAML format.
//
// The settings name the release repository, the hosting API base URL, the
// installed binary and the terminal command used by the editor surface. The
// API token is read from the GITHUB_TOKEN environment variable and is never
// written to disk.
package config
