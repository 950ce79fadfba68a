package repository

import (
	"context"

	"github.com/stemsi/academic-portal/internal/model"
)

// Results export columns.
const (
	colResultID   = "ID"
	colSemester   = "SEMESTER"
	colCourseCode = "CC"
	colCourseName = "CD"
	colGrade      = "GRADE"
	colStatus     = "STATUS"
)

// ResultRow is one graded course together with the semester it belongs to.
type ResultRow struct {
	Semester string
	Course   model.CourseResult
}

// ResultRepository reads graded courses from the results export.
type ResultRepository struct {
	source
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(path string) *ResultRepository {
	return &ResultRepository{source{path: path}}
}

// ListByStudent returns every graded course for studentID in file order.
func (r *ResultRepository) ListByStudent(ctx context.Context, studentID string) ([]ResultRow, error) {
	table, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var rows []ResultRow
	for _, row := range table.Rows {
		if row.Get(colResultID) != studentID {
			continue
		}
		rows = append(rows, ResultRow{
			Semester: row.Get(colSemester),
			Course: model.CourseResult{
				Name:       row.Get(colCourseName),
				CourseCode: row.Get(colCourseCode),
				Grade:      row.Get(colGrade),
				Status:     row.Get(colStatus),
			},
		})
	}
	return rows, nil
}
