package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/stemsi/academic-portal/internal/flatfile"
	"github.com/stemsi/academic-portal/internal/model"
)

// The attendance export carries ragged trailing delimiters, so its own
// header is skipped and the cells are named here.
var attendanceColumns = []string{"studentId", "courseCode", "attendance"}

// AttendanceRepository reads per-course attendance from the attendance export.
type AttendanceRepository struct {
	source
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(path string) *AttendanceRepository {
	return &AttendanceRepository{source{
		path: path,
		opts: flatfile.Options{Columns: attendanceColumns, SkipHeader: true},
	}}
}

// ListByStudent returns every row for studentID in file order. Course
// names are left empty for the caller to resolve.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]model.AttendanceRecord, error) {
	table, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	records := []model.AttendanceRecord{}
	for _, row := range table.Rows {
		if row.Get("studentId") != studentID {
			continue
		}
		records = append(records, model.AttendanceRecord{
			StudentID:  row.Get("studentId"),
			CourseCode: row.Get("courseCode"),
			Attendance: parsePercent(row.Get("attendance")),
		})
	}
	return records, nil
}

const maxPercent = 100

// parsePercent reads the leading integer of raw, so "92.9" is 92 and
// "85%" is 85, and clamps it to 0..100. Cells without leading digits
// read as 0.
func parsePercent(raw string) int {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// only a range error is possible here
		if s[0] == '-' {
			return 0
		}
		return maxPercent
	}
	switch {
	case n < 0:
		return 0
	case n > maxPercent:
		return maxPercent
	}
	return n
}
