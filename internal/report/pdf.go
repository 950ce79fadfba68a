package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Page geometry in millimetres for A4 portrait.
const (
	pdfLeft  = 15.0
	pdfRight = 195.0
	pdfWidth = pdfRight - pdfLeft
)

// WritePDF renders r as a single-page A4 report.
func WritePDF(w io.Writer, r *Report, passMarker string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfLeft, 12, 210-pdfRight)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 7, tr(r.Institution), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, tr(r.Department), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr("Student Academic Report - ID: "+r.StudentID), "", 1, "C", false, 0, "")
	pdf.SetLineWidth(0.4)
	pdf.Line(pdfLeft, pdf.GetY()+1, pdfRight, pdf.GetY()+1)
	pdf.Ln(4)

	// Profile
	if s := r.Student; s != nil {
		section(pdf, "Student Details")
		field := func(label, value string) {
			pdf.SetFont("Arial", "", 8)
			pdf.CellFormat(40, 5, label, "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "B", 8)
			pdf.CellFormat(0, 5, tr(value), "", 1, "L", false, 0, "")
		}
		field("Name:", s.Name)
		field("Gender:", s.Gender)
		field("Category:", s.Category)
		field("Contact:", s.Contact)
		field("Address:", s.Address)
		field("Counsellor:", fmt.Sprintf("%s (%s) %s", s.CounsellorName, s.CounsellorDesignation, s.CounsellorContact))
		pdf.Ln(2)
	}

	// Attendance
	section(pdf, fmt.Sprintf("Attendance Report - Semester %d (AY %s %s)", r.CurrentSemester, r.AcademicYear, r.Term))
	tableHeader(pdf, []string{"Course Code", "Course Name", "Attendance"}, []float64{30, 120, 30})
	pdf.SetFont("Arial", "", 8)
	for _, a := range r.Attendance {
		pdf.CellFormat(30, 5, tr(a.CourseCode), "B", 0, "L", false, 0, "")
		pdf.CellFormat(120, 5, tr(a.Name), "B", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, fmt.Sprintf("%d%%", a.Attendance), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// Grades
	section(pdf, fmt.Sprintf("Semester Results (CGPA: %s, Backlogs: %d)", r.CGPA.Value, r.Backlogs()))
	if r.Grades == nil || len(r.Grades.Semesters) == 0 {
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 5, "No results on record.", "", 1, "L", false, 0, "")
	} else {
		for _, sem := range r.Grades.Semesters {
			pdf.SetFont("Arial", "B", 8)
			pdf.CellFormat(pdfWidth/2, 5, tr(sem.Semester), "", 0, "L", false, 0, "")
			pdf.CellFormat(pdfWidth/2, 5, "CGPA: "+sem.CGPA, "", 1, "R", false, 0, "")
			tableHeader(pdf, []string{"Code", "Course", "Grade", "Status"}, []float64{30, 110, 20, 20})
			pdf.SetFont("Arial", "", 8)
			for _, c := range sem.Courses {
				if Failed(c.Status, passMarker) {
					pdf.SetTextColor(185, 28, 28)
				}
				pdf.CellFormat(30, 5, tr(c.CourseCode), "B", 0, "L", false, 0, "")
				pdf.CellFormat(110, 5, tr(c.Name), "B", 0, "L", false, 0, "")
				pdf.CellFormat(20, 5, tr(c.Grade), "B", 0, "C", false, 0, "")
				pdf.CellFormat(20, 5, tr(c.Status), "B", 1, "C", false, 0, "")
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.Ln(2)
		}
	}

	// Footer
	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 7)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 4, fmt.Sprintf("Generated on %s", r.GeneratedAt.Format("January 02, 2006 at 3:04 PM")), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
}

func tableHeader(pdf *gofpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(235, 235, 235)
	for i, col := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 6, col, "1", ln, "L", true, 0, "")
	}
}
