package model

import "fmt"

// NotAvailable is shown wherever a grade point value is unknown.
const NotAvailable = "N/A"

// CourseResult is a single graded course.
type CourseResult struct {
	Name       string `json:"name"`
	CourseCode string `json:"courseCode"`
	Grade      string `json:"grade"`
	Status     string `json:"status"`
}

// SemesterResult groups the courses graded in one semester.
type SemesterResult struct {
	Semester string         `json:"semester"`
	Number   int            `json:"number"`
	Courses  []CourseResult `json:"courses"`
	CGPA     string         `json:"cgpa"`
}

// SemesterLabel formats the display label for a semester key.
func SemesterLabel(key string) string {
	return fmt.Sprintf("Semester %s", key)
}

// GradeReport is the full grade history of a student.
type GradeReport struct {
	Semesters []SemesterResult `json:"semesters"`
	Backlogs  int              `json:"backlogs"`
}

// FirstSemesters returns a copy holding only the first n semesters.
// Backlogs still counts the whole history. n <= 0 keeps every semester.
func (g *GradeReport) FirstSemesters(n int) *GradeReport {
	if g == nil || n <= 0 || n >= len(g.Semesters) {
		return g
	}
	out := *g
	out.Semesters = append([]SemesterResult(nil), g.Semesters[:n]...)
	return &out
}
