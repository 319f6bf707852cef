// Package installer streams a release asset to disk and prepares it for execution.
//
// The response status is checked before the destination file is opened, the
// body is copied without buffering the whole payload, and on platforms that
// need it the file receives mode 0755 once the stream is closed. A partially
// written file is left in place when the copy fails.
package installer
