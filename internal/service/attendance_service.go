package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/model"
)

// AttendanceStore lists attendance rows for a student.
type AttendanceStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]model.AttendanceRecord, error)
}

// CourseNamer resolves a course code to its display name.
type CourseNamer interface {
	CourseName(code string) string
}

// AttendanceService handles attendance lookups.
type AttendanceService struct {
	store   AttendanceStore
	courses CourseNamer
	log     zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(store AttendanceStore, courses CourseNamer, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		store:   store,
		courses: courses,
		log:     log.With().Str("component", "attendance_service").Logger(),
	}
}

// GetAttendance returns the student's attendance rows in file order with
// course names filled in. An empty slice is a valid result.
func (s *AttendanceService) GetAttendance(ctx context.Context, studentID string) ([]model.AttendanceRecord, error) {
	id := strings.TrimSpace(studentID)

	records, err := s.store.ListByStudent(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("student_id", id).Msg("failed to read attendance")
		return nil, fmt.Errorf("get attendance: %w", err)
	}

	for i := range records {
		records[i].Name = s.courses.CourseName(records[i].CourseCode)
	}
	if records == nil {
		records = []model.AttendanceRecord{}
	}
	return records, nil
}
