package telegram

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/sharif-course-watch/internal/course"
)

// undefinedValue stands in for null or empty field values in the report.
const undefinedValue = "تعریف نشده"

// fieldLabels maps course record fields to their report labels.
var fieldLabels = map[string]string{
	"Name":       "🪧 نام درس",
	"Lecturer":   "👨‍🏫 استاد",
	"Capacity":   "📊 ظرفیت",
	"Registered": "📈 ثبت نامی",
	"ExamDate":   "📅 تاریخ آزمون",
	"ExamTime":   "🕒 ساعت آزمون",
	"Sessions":   "🗓️ برنامه هفتگی",
	"Info":       "💬 توضیحات",
	// Unlikely to change:
	"Code":           "کد درس",
	"Group":          "گروه درس",
	"Units":          "واحد",
	"Year":           "سال",
	"Semester":       "ترم",
	"Department":     "دانشکده",
	"DepartmentCode": "کد دانشکده",
	"Grade":          "مقطع",
}

// valueFormatters is a closed mapping from field name to a specialized
// value renderer; fields without an entry use the default renderer.
var valueFormatters = map[string]func(json.RawMessage) string{
	"Sessions": formatSessionsValue,
}

// FormatTimeRange renders the header message naming the snapshots being
// compared, sent before the per-department blocks.
func FormatTimeRange(oldTime, newTime string) string {
	return fmt.Sprintf("```Time [%s] ➡️ [%s] ```", oldTime, newTime)
}

// FormatReport renders one text block per department with at least one
// change, departments in lexicographic order. Each block opens with the
// department header followed by its added, removed and updated sections.
func FormatReport(diff *course.DiffResult) []string {
	depts := make([]string, 0, len(diff.Departments()))
	for dept := range diff.Departments() {
		depts = append(depts, dept)
	}
	sort.Strings(depts)

	blocks := make([]string, 0, len(depts))
	for _, dept := range depts {
		lines := []string{fmt.Sprintf("🏛️ %s:", dept)}
		lines = appendCourseGroup(lines, diff.Added[dept], "Added Courses", "🟢")
		lines = appendCourseGroup(lines, diff.Removed[dept], "Removed Courses", "🔴")
		lines = appendUpdateGroup(lines, diff.Updated[dept], "Updated Courses", "🟡")
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return blocks
}

func appendCourseGroup(lines []string, group map[string]*course.Course, title, emoji string) []string {
	if len(group) == 0 {
		return lines
	}
	lines = append(lines, fmt.Sprintf("%s %s:", emoji, title))
	for _, key := range sortedKeys(group) {
		lines = append(lines, fmt.Sprintf("- %s (ID: %s)", group[key].Name, key))
		lines = append(lines, "")
	}
	return lines
}

func appendUpdateGroup(lines []string, group map[string]*course.Update, title, emoji string) []string {
	if len(group) == 0 {
		return lines
	}
	lines = append(lines, fmt.Sprintf("%s %s:", emoji, title))
	for _, key := range sortedKeys(group) {
		update := group[key]
		lines = append(lines, fmt.Sprintf("- %s (ID: %s)", update.Name, key))
		for _, field := range sortedKeys(update.Changes) {
			change := update.Changes[field]
			lines = append(lines, fmt.Sprintf("    %s: %s ◀️ %s",
				fieldLabel(field), formatValue(field, change.Old), formatValue(field, change.New)))
		}
		lines = append(lines, "")
	}
	return lines
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

func formatValue(field string, raw json.RawMessage) string {
	if format, ok := valueFormatters[field]; ok {
		return format(raw)
	}
	return formatDefault(raw)
}

// formatDefault renders a serialized field value as plain text with the
// undefined placeholder for null and empty values.
func formatDefault(raw json.RawMessage) string {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	switch v := value.(type) {
	case nil:
		return undefinedValue
	case string:
		if v == "" {
			return undefinedValue
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatSessionsValue(raw json.RawMessage) string {
	var sessions []course.CourseSession
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return formatDefault(raw)
	}
	rendered := course.FormatSessions(sessions)
	if rendered == "" {
		return undefinedValue
	}
	return rendered
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
