package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/catalog"
	"github.com/stemsi/academic-portal/internal/report"
)

// SemesterResolver maps a student ID to the semester in progress and to
// the number of semesters its reports show.
type SemesterResolver interface {
	CurrentSemester(studentID string) int
	VisibleSemesters(studentID string) int
}

// ReportService merges the four per-student lookups into one report.
type ReportService struct {
	students   *StudentService
	attendance *AttendanceService
	results    *ResultService
	cgpa       *CGPAService
	semesters  SemesterResolver
	header     report.Header
	log        zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	students *StudentService,
	attendance *AttendanceService,
	results *ResultService,
	cgpa *CGPAService,
	semesters SemesterResolver,
	header report.Header,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		students:   students,
		attendance: attendance,
		results:    results,
		cgpa:       cgpa,
		semesters:  semesters,
		header:     header,
		log:        log.With().Str("component", "report_service").Logger(),
	}
}

// Build runs the CGPA, profile, attendance and results lookups in that
// order and stops at the first failure. Grades are cut to the batch's
// visible semesters. A missing profile yields
// ErrStudentNotFound and an empty attendance list yields ErrNoAttendance;
// a missing CGPA is reported as "N/A".
func (s *ReportService) Build(ctx context.Context, studentID string) (*report.Report, error) {
	id := strings.TrimSpace(studentID)

	cgpa, err := s.cgpa.GetCGPA(ctx, id)
	if err != nil {
		return nil, err
	}

	student, err := s.students.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	attendance, err := s.attendance.GetAttendance(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(attendance) == 0 {
		return nil, ErrNoAttendance
	}

	grades, err := s.results.GetResults(ctx, id)
	if err != nil {
		return nil, err
	}
	grades = grades.FirstSemesters(s.semesters.VisibleSemesters(id))

	semester := s.semesters.CurrentSemester(id)

	s.log.Debug().
		Str("student_id", id).
		Int("courses", len(attendance)).
		Int("semesters", len(grades.Semesters)).
		Msg("report built")

	return &report.Report{
		Header:          s.header,
		StudentID:       id,
		Student:         student,
		Attendance:      attendance,
		Grades:          grades,
		CGPA:            cgpa,
		CurrentSemester: semester,
		Term:            catalog.Term(semester),
		GeneratedAt:     time.Now(),
	}, nil
}
