// Package storage provides JSON persistence for course snapshots.
//
// The current snapshot lives in courses_output.json; each save first
// rotates it to "courses_output - old.json" so the previous pass stays
// available for diffing, and a timestamped copy of every snapshot is kept
// in the archive directory for diffing against older history.
package storage
