package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/sharif-course-watch/internal/course"
)

// termHeaderPattern matches "نیمسال <label> <start>-<end>" in the page
// header. The academic year is taken from the second (end) year of the
// range, matching the source system's own convention.
var termHeaderPattern = regexp.MustCompile(`نیمسال (\S+) (\d{4})-(\d{4})`)

const (
	gradeMastersKeyword  = "کارشناسی ارشد"
	gradeDoctoralKeyword = "دکترا"
)

// ExtractCourses walks one department page, inserts every parsed record
// into snap (overwriting on key collision) and returns the number of rows
// extracted. Malformed rows degrade to partial records and a missing term
// header only zeroes year/semester; nothing about the page shape is fatal.
func ExtractCourses(doc *goquery.Document, depCode int, depName string, snap course.Snapshot) int {
	year, semester := parseTermHeader(doc)
	department := HumanizeDepartment(depName)

	count := 0
	doc.Find(".contentTable").Each(func(_ int, table *goquery.Selection) {
		grade := tableGrade(table)
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			c, ok := parseRow(row)
			if !ok {
				return
			}
			c.Grade = grade
			c.Year = year
			c.Semester = semester
			c.Department = department
			c.DepartmentCode = depCode
			snap.Add(c)
			count++
		})
	})
	return count
}

func parseTermHeader(doc *goquery.Document) (year, semester int) {
	header := doc.Find(`td.header[colspan='13']`).First()
	if header.Length() == 0 {
		return 0, 0
	}
	m := termHeaderPattern.FindStringSubmatch(strings.TrimSpace(header.Text()))
	if m == nil {
		return 0, 0
	}
	year = atoiOrZero(m[3])
	switch m[1] {
	case "اول":
		semester = 1
	case "دوم":
		semester = 2
	default:
		// summer term and anything unrecognized
		semester = 3
	}
	return year, semester
}

// tableGrade classifies a content table's academic level from the text of
// its first body row; the result applies to every row of the table.
func tableGrade(table *goquery.Selection) string {
	firstRow := table.Find("tbody tr").First()
	if firstRow.Length() == 0 {
		return "bs"
	}
	texts := make([]string, 0)
	firstRow.Find("td").Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(cell.Text()))
	})
	rowText := strings.Join(texts, " ")
	switch {
	case strings.Contains(rowText, gradeMastersKeyword):
		return "ms"
	case strings.Contains(rowText, gradeDoctoralKeyword):
		return "phd"
	default:
		return "bs"
	}
}

// parseRow maps the fixed column layout onto a course record. Rows whose
// first cell is not a plain non-negative integer are header or separator
// rows and are skipped; that is the only row-type marker the page has.
func parseRow(row *goquery.Selection) (*course.Course, bool) {
	cells := row.Find("td")
	if cells.Length() == 0 {
		return nil, false
	}
	if !isDigits(strings.TrimSpace(cells.First().Text())) {
		return nil, false
	}

	c := &course.Course{Sessions: make([]course.CourseSession, 0)}
	cells.Each(func(i int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		switch i {
		case 0:
			c.Code = text
		case 1:
			c.Group = atoiOrZero(text)
		case 2:
			c.Units = atoiOrZero(text)
		case 3:
			c.Name = text
		case 5:
			c.Capacity = atoiOrZero(text)
		case 6:
			c.Registered = atoiOrZero(text)
		case 7:
			c.Lecturer = text
		case 8:
			c.ExamDate, c.ExamTime = course.SplitExam(text)
		case 9:
			c.Sessions = course.ParseSessions(text)
		case 11:
			c.Info = course.OptionalText(text)
		}
	})
	return c, true
}

// atoiOrZero is the degrade-to-zero integer parse used across the
// extractor: a cell that does not hold a number keeps the field's default.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
