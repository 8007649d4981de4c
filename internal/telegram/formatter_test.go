package telegram

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pfrederiksen/sharif-course-watch/internal/course"
)

func testDiff(t *testing.T, old, current course.Snapshot) *course.DiffResult {
	t.Helper()
	return course.Diff(old, current)
}

func addCourse(snap course.Snapshot, code string, group int, name, dept string, registered int) {
	snap.Add(&course.Course{
		Code:       code,
		Group:      group,
		Name:       name,
		Registered: registered,
		Sessions:   make([]course.CourseSession, 0),
		Department: dept,
	})
}

func TestFormatReport(t *testing.T) {
	old := course.NewSnapshot()
	addCourse(old, "101", 1, "X", "CS", 30)
	addCourse(old, "201", 1, "Gone", "EE", 10)

	current := course.NewSnapshot()
	addCourse(current, "101", 1, "X", "CS", 32)
	addCourse(current, "102", 1, "Y", "CS", 0)

	blocks := FormatReport(testDiff(t, old, current))

	if len(blocks) != 2 {
		t.Fatalf("expected 2 department blocks, got %d", len(blocks))
	}

	t.Run("departments sorted lexicographically", func(t *testing.T) {
		if !strings.HasPrefix(blocks[0], "🏛️ CS:") {
			t.Errorf("expected CS block first, got %q", blocks[0])
		}
		if !strings.HasPrefix(blocks[1], "🏛️ EE:") {
			t.Errorf("expected EE block second, got %q", blocks[1])
		}
	})

	t.Run("added section", func(t *testing.T) {
		if !strings.Contains(blocks[0], "🟢 Added Courses:") {
			t.Error("missing added section")
		}
		if !strings.Contains(blocks[0], "- Y (ID: 102-1)") {
			t.Errorf("missing added entry in %q", blocks[0])
		}
	})

	t.Run("removed section", func(t *testing.T) {
		if !strings.Contains(blocks[1], "🔴 Removed Courses:") {
			t.Error("missing removed section")
		}
		if !strings.Contains(blocks[1], "- Gone (ID: 201-1)") {
			t.Errorf("missing removed entry in %q", blocks[1])
		}
		if strings.Contains(blocks[1], "Added Courses") || strings.Contains(blocks[1], "Updated Courses") {
			t.Error("EE block should only have a removed section")
		}
	})

	t.Run("updated section with field line", func(t *testing.T) {
		if !strings.Contains(blocks[0], "🟡 Updated Courses:") {
			t.Error("missing updated section")
		}
		if !strings.Contains(blocks[0], "- X (ID: 101-1)") {
			t.Error("missing updated entry")
		}
		if !strings.Contains(blocks[0], "    📈 ثبت نامی: 30 ◀️ 32") {
			t.Errorf("missing change line in %q", blocks[0])
		}
	})
}

func TestFormatReportEmptyDiff(t *testing.T) {
	snap := course.NewSnapshot()
	addCourse(snap, "101", 1, "X", "CS", 30)

	blocks := FormatReport(testDiff(t, snap, snap))
	if len(blocks) != 0 {
		t.Errorf("expected no blocks for an empty diff, got %d", len(blocks))
	}
}

func TestFormatValue(t *testing.T) {
	t.Run("null becomes placeholder", func(t *testing.T) {
		if got := formatValue("ExamDate", json.RawMessage("null")); got != undefinedValue {
			t.Errorf("expected placeholder, got %q", got)
		}
	})

	t.Run("empty string becomes placeholder", func(t *testing.T) {
		if got := formatValue("Lecturer", json.RawMessage(`""`)); got != undefinedValue {
			t.Errorf("expected placeholder, got %q", got)
		}
	})

	t.Run("numbers render without decimals", func(t *testing.T) {
		if got := formatValue("Capacity", json.RawMessage("40")); got != "40" {
			t.Errorf("expected 40, got %q", got)
		}
	})

	t.Run("sessions use the schedule renderer", func(t *testing.T) {
		raw := json.RawMessage(`[{"day_of_week":0,"start_time":"09:00","end_time":"10:30"},{"day_of_week":2,"start_time":"09:00","end_time":"10:30"}]`)
		want := "شنبه و دوشنبه از 09:00 تا 10:30"
		if got := formatValue("Sessions", raw); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("empty sessions become placeholder", func(t *testing.T) {
		if got := formatValue("Sessions", json.RawMessage("[]")); got != undefinedValue {
			t.Errorf("expected placeholder, got %q", got)
		}
	})

	t.Run("unknown field label falls back to the name", func(t *testing.T) {
		if got := fieldLabel("Mystery"); got != "Mystery" {
			t.Errorf("expected fallback label, got %q", got)
		}
	})
}

func TestFormatTimeRange(t *testing.T) {
	got := FormatTimeRange("2026-01-01 10:00:00", "2026-01-01 11:00:00")
	want := "```Time [2026-01-01 10:00:00] ➡️ [2026-01-01 11:00:00] ```"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
