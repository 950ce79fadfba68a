package repository

import (
	"context"

	"github.com/stemsi/academic-portal/internal/model"
)

// Profile export columns.
const (
	colEnrolmentID   = "Student Unique Enrolment ID"
	colStudentName   = "Name of the student"
	colGender        = "Gender"
	colCategory      = "DayScholar/Hostler"
	colContact       = "Contact No"
	colAddress       = "Postel Address"
	colMentorName    = "Name of the Mentor"
	colMentorRole    = "Designation"
	colMentorContact = "Mentor Contact No"
)

// StudentRepository reads student profiles from the profile export.
type StudentRepository struct {
	source
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(path string) *StudentRepository {
	return &StudentRepository{source{path: path}}
}

// GetByID returns the first profile whose enrolment ID equals id.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	table, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, row := range table.Rows {
		if row.Get(colEnrolmentID) != id {
			continue
		}
		return &model.Student{
			ID:                    row.Get(colEnrolmentID),
			Name:                  row.Get(colStudentName),
			Gender:                row.Get(colGender),
			Category:              row.Get(colCategory),
			Contact:               row.Get(colContact),
			Address:               row.Get(colAddress),
			CounsellorName:        row.Get(colMentorName),
			CounsellorDesignation: row.Get(colMentorRole),
			CounsellorContact:     row.Get(colMentorContact),
		}, nil
	}
	return nil, ErrNotFound
}
