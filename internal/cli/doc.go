// Package cli implements the command-line interface for course-watch.
//
// The cli package provides the Cobra-based CLI with a single-pass run
// command, a periodic watch loop with signal handling, and an offline diff
// command for comparing snapshot files. It coordinates the scraper,
// storage, watcher and telegram packages.
package cli
