package course

import (
	"fmt"
	"regexp"
	"strings"
)

// dayOfWeek maps the day names as they appear in the schedule column to
// their 0-based index (week starts on Saturday).
var dayOfWeek = map[string]int{
	"شنبه":     0,
	"یکشنبه":   1,
	"دوشنبه":   2,
	"سه شنبه":  3,
	"چهارشنبه": 4,
	"پنجشنبه":  5,
	"جمعه":     6,
}

// weekdayNames is the display form of the weekdays, indexed by DayOfWeek.
var weekdayNames = [...]string{"شنبه", "یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنجشنبه", "جمعه"}

var (
	examPattern = regexp.MustCompile(`(\S+)\s*(\d{2}:\d{2})`)
	// one schedule segment: a day-name list, then "از <start> تا <end>"
	sessionPattern = regexp.MustCompile(`([^\d]+) از (\d{1,2}:\d{1,2}) تا (\d{1,2}:\d{1,2})`)
)

// NormalizeTime left-pads a single-digit hour and right-pads a
// single-digit minute, so "9:5" becomes "09:50". The trailing-zero minute
// rule matches the source system's own rendering; do not "fix" it.
// Anything that is not two colon-separated parts passes through unchanged.
func NormalizeTime(t string) string {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return t
	}
	h, m := parts[0], parts[1]
	if len(h) == 1 {
		h = "0" + h
	}
	if len(m) == 1 {
		m = m + "0"
	}
	return h + ":" + m
}

// SplitExam splits an exam cell into its date and time parts. The first
// non-whitespace token followed by an HH:MM time wins; no match yields
// (nil, nil).
func SplitExam(s string) (date, clock *string) {
	m := examPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, nil
	}
	return OptionalText(m[1]), OptionalText(m[2])
}

// ParseSessions decodes a weekly-schedule cell into sessions. Each segment
// carries a "و"-joined day list sharing one start/end pair; unrecognized
// day names are dropped and a segment with no recognized days contributes
// nothing without aborting later segments.
func ParseSessions(s string) []CourseSession {
	sessions := make([]CourseSession, 0)
	for _, m := range sessionPattern.FindAllStringSubmatch(s, -1) {
		start := NormalizeTime(m[2])
		end := NormalizeTime(m[3])
		for _, day := range strings.Split(m[1], " و ") {
			idx, ok := dayOfWeek[strings.TrimSpace(day)]
			if !ok {
				continue
			}
			sessions = append(sessions, CourseSession{DayOfWeek: idx, StartTime: start, EndTime: end})
		}
	}
	return sessions
}

// FormatSessions renders sessions for the change report. When every session
// shares the same start/end the days collapse into one joined list; any
// mixed times fall back to one clause per session. Empty input renders as
// the empty string so the caller can substitute its placeholder.
func FormatSessions(sessions []CourseSession) string {
	if len(sessions) == 0 {
		return ""
	}
	first := sessions[0]
	uniform := true
	for _, s := range sessions[1:] {
		if s.StartTime != first.StartTime || s.EndTime != first.EndTime {
			uniform = false
			break
		}
	}
	if uniform {
		days := make([]string, 0, len(sessions))
		for _, s := range sessions {
			days = append(days, weekdayName(s.DayOfWeek))
		}
		return strings.Join(days, " و ") + fmt.Sprintf(" از %s تا %s", first.StartTime, first.EndTime)
	}
	clauses := make([]string, 0, len(sessions))
	for _, s := range sessions {
		clauses = append(clauses, fmt.Sprintf("%s از %s تا %s", weekdayName(s.DayOfWeek), s.StartTime, s.EndTime))
	}
	return strings.Join(clauses, "، ")
}

func weekdayName(day int) string {
	if day < 0 || day >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[day]
}
