// Package watcher orchestrates extraction passes: authenticated fetch of
// every watched department, snapshot persistence, diffing against the
// previous snapshot and report delivery.
package watcher
