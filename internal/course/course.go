package course

import (
	"fmt"
	"strings"
)

// CourseSession is one weekly occurrence of a course.
type CourseSession struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Course is one offering group of a subject in one term. Code and Group
// together identify the record; department, grade and term context is
// stamped by the extractor, not parsed from the row itself.
type Course struct {
	Code           string
	Group          int
	Name           string
	Lecturer       string
	Capacity       int
	Registered     int
	Units          int
	ExamDate       *string
	ExamTime       *string
	Sessions       []CourseSession
	Info           *string
	Department     string
	DepartmentCode int
	Grade          string
	Year           int
	Semester       int
}

// Key returns the snapshot key "<code>-<group>".
func (c *Course) Key() string {
	return fmt.Sprintf("%s-%d", c.Code, c.Group)
}

// Snapshot is the full set of observed courses at one point in time,
// keyed by Course.Key. A later insert with the same key overwrites the
// earlier record.
type Snapshot map[string]*Course

// NewSnapshot creates an empty snapshot.
func NewSnapshot() Snapshot {
	return make(Snapshot)
}

// Add inserts c under its key, overwriting any previous record.
func (s Snapshot) Add(c *Course) {
	s[c.Key()] = c
}

// OptionalText trims s and returns nil when nothing is left.
func OptionalText(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
