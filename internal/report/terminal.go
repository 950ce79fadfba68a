package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("#50FA7B")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorRed    = lipgloss.Color("#FF5555")
	colorBlue   = lipgloss.Color("#8BE9FD")
	colorGrey   = lipgloss.Color("#626262")

	titleStyle   = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(colorGrey).Width(22)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorGrey).Italic(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func attendanceStyle(b Band) lipgloss.Style {
	switch b {
	case BandGood:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case BandWarning:
		return lipgloss.NewStyle().Foreground(colorYellow)
	default:
		return lipgloss.NewStyle().Foreground(colorRed)
	}
}

func cgpaStyle(b Band) lipgloss.Style {
	switch b {
	case BandExcellent:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case BandGood:
		return lipgloss.NewStyle().Foreground(colorBlue)
	default:
		return lipgloss.NewStyle().Foreground(colorYellow)
	}
}

// RenderTerminal renders r for a terminal.
func RenderTerminal(r *Report, passMarker string) string {
	var b strings.Builder

	header := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(r.Institution),
		r.Department,
		"Student Academic Report - ID: "+r.StudentID,
	)
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n")

	if s := r.Student; s != nil {
		b.WriteString(sectionStyle.Render("Student Details"))
		b.WriteString("\n")
		for _, kv := range [][2]string{
			{"Name", s.Name},
			{"Gender", s.Gender},
			{"Category", s.Category},
			{"Contact", s.Contact},
			{"Address", s.Address},
			{"Counsellor", s.CounsellorName},
			{"Designation", s.CounsellorDesignation},
			{"Counsellor Contact", s.CounsellorContact},
		} {
			b.WriteString(labelStyle.Render(kv[0]) + kv[1] + "\n")
		}
	}

	cgpa := cgpaStyle(CGPABand(r.CGPA.Value)).Render(r.CGPA.Value)
	b.WriteString(labelStyle.Render("CGPA") + cgpa + "\n")
	b.WriteString(labelStyle.Render("Backlogs") + fmt.Sprintf("%d", r.Backlogs()) + "\n")

	b.WriteString(sectionStyle.Render(fmt.Sprintf("AY: %s %s Semester Attendance (Semester %d)", r.AcademicYear, r.Term, r.CurrentSemester)))
	b.WriteString("\n")
	if len(r.Attendance) == 0 {
		b.WriteString(mutedStyle.Render("No attendance records.") + "\n")
	}
	for _, a := range r.Attendance {
		pct := attendanceStyle(AttendanceBand(a.Attendance)).Render(fmt.Sprintf("%3d%%", a.Attendance))
		fmt.Fprintf(&b, "%-10s %-50s %s\n", a.CourseCode, a.Name, pct)
	}

	if r.Grades != nil {
		for _, sem := range r.Grades.Semesters {
			b.WriteString(sectionStyle.Render(sem.Semester))
			b.WriteString("\n")
			for _, c := range sem.Courses {
				status := c.Status
				if Failed(c.Status, passMarker) {
					status = lipgloss.NewStyle().Foreground(colorRed).Render(status)
				}
				fmt.Fprintf(&b, "%-10s %-50s %-3s %s\n", c.CourseCode, c.Name, c.Grade, status)
			}
		}
	}

	return b.String()
}
