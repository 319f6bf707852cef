// Package install runs the release installation pipeline: load settings,
// detect the platform, resolve the latest release asset, stream it to disk
// and mark it executable.
//
// Each Run is an independent one-shot invocation. Callers are expected to
// keep at most one run per destination active at a time.
package install
