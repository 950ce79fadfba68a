// Package report holds the merged per-student report and its renderings:
// PDF, spreadsheet, terminal text and share links.
package report

import (
	"strconv"
	"time"

	"github.com/stemsi/academic-portal/internal/model"
)

// Header carries the institution lines printed on every rendering.
type Header struct {
	Institution  string `json:"institution"`
	Department   string `json:"department"`
	AcademicYear string `json:"academicYear"`
}

// Report is everything shown for one student.
type Report struct {
	Header

	StudentID       string                   `json:"studentId"`
	Student         *model.Student           `json:"student"`
	Attendance      []model.AttendanceRecord `json:"attendance"`
	Grades          *model.GradeReport       `json:"grades"`
	CGPA            model.CGPA               `json:"cgpa"`
	CurrentSemester int                      `json:"currentSemester"`
	Term            string                   `json:"term"`
	GeneratedAt     time.Time                `json:"generatedAt"`
}

// Backlogs returns the number of uncleared courses.
func (r *Report) Backlogs() int {
	if r.Grades == nil {
		return 0
	}
	return r.Grades.Backlogs
}

// Name returns the student's name, or "" when the profile is absent.
func (r *Report) Name() string {
	if r.Student == nil {
		return ""
	}
	return r.Student.Name
}

// Band is a coarse rating used to colour badges.
type Band string

const (
	BandGood      Band = "good"
	BandWarning   Band = "warning"
	BandLow       Band = "low"
	BandExcellent Band = "excellent"
	BandFair      Band = "fair"
)

// AttendanceBand rates an attendance percentage: 85 and above is good,
// 75 and above is a warning, anything lower is low.
func AttendanceBand(percent int) Band {
	switch {
	case percent >= 85:
		return BandGood
	case percent >= 75:
		return BandWarning
	default:
		return BandLow
	}
}

// CGPABand rates a CGPA string. Unparsable values such as "N/A" are fair.
func CGPABand(cgpa string) Band {
	score, err := strconv.ParseFloat(cgpa, 64)
	if err != nil {
		return BandFair
	}
	switch {
	case score >= 9.0:
		return BandExcellent
	case score >= 8.0:
		return BandGood
	default:
		return BandFair
	}
}

// Failed reports whether a course status should be highlighted.
func Failed(status, passMarker string) bool {
	return status != passMarker
}
