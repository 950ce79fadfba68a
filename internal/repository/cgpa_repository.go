package repository

import (
	"context"
)

const (
	colCGPAStudentID = "Student ID"
	colCGPA          = "CGPA"
)

// CGPARepository reads cumulative grade point averages.
type CGPARepository struct {
	source
}

// NewCGPARepository creates a new CGPARepository.
func NewCGPARepository(path string) *CGPARepository {
	return &CGPARepository{source{path: path}}
}

// GetByStudent returns the CGPA cell of the first row for studentID.
func (r *CGPARepository) GetByStudent(ctx context.Context, studentID string) (string, error) {
	table, err := r.load(ctx)
	if err != nil {
		return "", err
	}

	for _, row := range table.Rows {
		if row.Get(colCGPAStudentID) == studentID {
			return row.Get(colCGPA), nil
		}
	}
	return "", ErrNotFound
}
