// Package release resolves the downloadable asset of a repository's latest
// published release for a given platform.
//
// Metadata is fetched fresh on every call through the GitHub REST API
// (GET /repos/{owner}/{repo}/releases/latest) and is never cached. Asset
// selection scans the published order and returns the first asset whose name
// contains the platform substring.
package release
