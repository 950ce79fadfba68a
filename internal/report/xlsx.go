package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	sheetAttendance = "Attendance"
	sheetResults    = "Results"
)

// WriteXLSX writes r as a workbook with a profile sheet, an attendance
// sheet and a results sheet.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	profile := f.GetSheetName(0)
	if err := f.SetSheetName(profile, "Profile"); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	profile = "Profile"

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	rows := [][]interface{}{
		{"Institution", r.Institution},
		{"Department", r.Department},
		{"Academic Year", r.AcademicYear},
		{"Student ID", r.StudentID},
		{"Name", r.Name()},
		{"CGPA", r.CGPA.Value},
		{"Backlogs", r.Backlogs()},
		{"Current Semester", r.CurrentSemester},
	}
	if s := r.Student; s != nil {
		rows = append(rows,
			[]interface{}{"Gender", s.Gender},
			[]interface{}{"Category", s.Category},
			[]interface{}{"Contact", s.Contact},
			[]interface{}{"Address", s.Address},
			[]interface{}{"Counsellor", s.CounsellorName},
			[]interface{}{"Counsellor Designation", s.CounsellorDesignation},
			[]interface{}{"Counsellor Contact", s.CounsellorContact},
		)
	}
	if err := writeRows(f, profile, rows); err != nil {
		return err
	}
	_ = f.SetColStyle(profile, "A", bold)
	_ = f.SetColWidth(profile, "A", "A", 24)
	_ = f.SetColWidth(profile, "B", "B", 48)

	if _, err := f.NewSheet(sheetAttendance); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	rows = [][]interface{}{{"Course Code", "Course Name", "Attendance"}}
	for _, a := range r.Attendance {
		rows = append(rows, []interface{}{a.CourseCode, a.Name, a.Attendance})
	}
	if err := writeRows(f, sheetAttendance, rows); err != nil {
		return err
	}
	_ = f.SetRowStyle(sheetAttendance, 1, 1, bold)
	_ = f.SetColWidth(sheetAttendance, "B", "B", 50)

	if _, err := f.NewSheet(sheetResults); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	rows = [][]interface{}{{"Semester", "Course Code", "Course Name", "Grade", "Status"}}
	if r.Grades != nil {
		for _, sem := range r.Grades.Semesters {
			for _, c := range sem.Courses {
				rows = append(rows, []interface{}{sem.Semester, c.CourseCode, c.Name, c.Grade, c.Status})
			}
		}
	}
	if err := writeRows(f, sheetResults, rows); err != nil {
		return err
	}
	_ = f.SetRowStyle(sheetResults, 1, 1, bold)
	_ = f.SetColWidth(sheetResults, "C", "C", 50)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
