package course

import (
	"bytes"
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// FieldChange holds the serialized old and new values of one changed field.
type FieldChange struct {
	Old json.RawMessage `json:"old"`
	New json.RawMessage `json:"new"`
}

// Update describes one changed course: its display name plus the fields
// that differ between the two snapshots.
type Update struct {
	Name    string                 `json:"Name"`
	Changes map[string]FieldChange `json:"changes"`
}

// DiffResult groups added, removed and updated courses first by department
// display name, then by course key.
type DiffResult struct {
	Added   map[string]map[string]*Course
	Removed map[string]map[string]*Course
	Updated map[string]map[string]*Update
}

// Empty reports whether the diff contains no changes at all.
func (r *DiffResult) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Updated) == 0
}

// Departments returns the union of department names across all three groups.
func (r *DiffResult) Departments() map[string]struct{} {
	depts := make(map[string]struct{})
	for d := range r.Added {
		depts[d] = struct{}{}
	}
	for d := range r.Removed {
		depts[d] = struct{}{}
	}
	for d := range r.Updated {
		depts[d] = struct{}{}
	}
	return depts
}

// Diff compares two snapshots without mutating either. Added entries are
// grouped by the new record's department, removed entries by the old
// record's. Records present on both sides are compared field by field over
// their serialized form; an update with an empty changeset is not reported.
func Diff(old, current Snapshot) *DiffResult {
	result := &DiffResult{
		Added:   make(map[string]map[string]*Course),
		Removed: make(map[string]map[string]*Course),
		Updated: make(map[string]map[string]*Update),
	}

	for key, c := range current {
		if _, ok := old[key]; !ok {
			addCourse(result.Added, key, c)
		}
	}
	for key, c := range old {
		if _, ok := current[key]; !ok {
			addCourse(result.Removed, key, c)
		}
	}

	for key, newCourse := range current {
		oldCourse, ok := old[key]
		if !ok {
			continue
		}
		changes := compareFields(key, oldCourse, newCourse)
		if len(changes) == 0 {
			continue
		}
		dept := newCourse.Department
		if result.Updated[dept] == nil {
			result.Updated[dept] = make(map[string]*Update)
		}
		result.Updated[dept][key] = &Update{Name: newCourse.Name, Changes: changes}
	}

	return result
}

func addCourse(group map[string]map[string]*Course, key string, c *Course) {
	if group[c.Department] == nil {
		group[c.Department] = make(map[string]*Course)
	}
	group[c.Department][key] = c
}

// compareFields records {old, new} for every field present on both sides
// whose serialized values differ. A field missing on one side indicates
// schema drift between extraction passes; it is logged and suppressed
// rather than reported or treated as fatal.
func compareFields(key string, oldCourse, newCourse *Course) map[string]FieldChange {
	oldFields := fieldSet(oldCourse)
	newFields := fieldSet(newCourse)

	changes := make(map[string]FieldChange)
	for field, newVal := range newFields {
		oldVal, ok := oldFields[field]
		if !ok {
			log.WithFields(log.Fields{"course": key, "field": field}).
				Warn("field missing from previous snapshot, skipping")
			continue
		}
		if !bytes.Equal(oldVal, newVal) {
			changes[field] = FieldChange{Old: oldVal, New: newVal}
		}
	}
	return changes
}

// fieldSet serializes a course into its persisted field set, the same shape
// snapshots are stored in, so in-memory and archived records compare alike.
func fieldSet(c *Course) map[string]json.RawMessage {
	data, err := json.Marshal(c)
	if err != nil {
		return nil
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	return fields
}
