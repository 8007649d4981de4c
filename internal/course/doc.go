// Package course provides the course record model, the textual sub-parsers
// for schedule and exam cells, and snapshot diffing.
//
// A Snapshot maps "<code>-<group>" keys to normalized Course records and is
// built fresh on every extraction pass. Diff compares two snapshots over
// their serialized field sets, producing per-field changesets grouped by
// department for the change report.
package course
