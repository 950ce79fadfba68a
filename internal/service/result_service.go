package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/model"
	"github.com/stemsi/academic-portal/internal/repository"
)

// ResultStore lists graded courses for a student.
type ResultStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]repository.ResultRow, error)
}

// ResultService builds semester-wise grade reports.
type ResultService struct {
	store      ResultStore
	passMarker string
	log        zerolog.Logger
}

// NewResultService creates a new ResultService. Courses whose status
// differs from passMarker count as backlogs.
func NewResultService(store ResultStore, passMarker string, log zerolog.Logger) *ResultService {
	return &ResultService{
		store:      store,
		passMarker: passMarker,
		log:        log.With().Str("component", "result_service").Logger(),
	}
}

// GetResults groups the student's courses by semester. Numeric semesters
// come first in ascending order; other labels follow in first-seen order.
func (s *ResultService) GetResults(ctx context.Context, studentID string) (*model.GradeReport, error) {
	id := strings.TrimSpace(studentID)

	rows, err := s.store.ListByStudent(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("student_id", id).Msg("failed to read results")
		return nil, fmt.Errorf("get results: %w", err)
	}

	report := &model.GradeReport{Semesters: []model.SemesterResult{}}
	index := make(map[string]int)

	for _, row := range rows {
		key := strings.TrimSpace(row.Semester)
		i, ok := index[key]
		if !ok {
			n, _ := strconv.Atoi(key)
			report.Semesters = append(report.Semesters, model.SemesterResult{
				Semester: model.SemesterLabel(key),
				Number:   n,
				Courses:  []model.CourseResult{},
				CGPA:     model.NotAvailable,
			})
			i = len(report.Semesters) - 1
			index[key] = i
		}
		report.Semesters[i].Courses = append(report.Semesters[i].Courses, row.Course)

		if row.Course.Status != s.passMarker {
			report.Backlogs++
		}
	}

	sort.SliceStable(report.Semesters, func(a, b int) bool {
		na, aok := semesterNumber(report.Semesters[a])
		nb, bok := semesterNumber(report.Semesters[b])
		if aok && bok {
			return na < nb
		}
		return aok && !bok
	})

	return report, nil
}

func semesterNumber(s model.SemesterResult) (int, bool) {
	key := strings.TrimPrefix(s.Semester, "Semester ")
	n, err := strconv.Atoi(key)
	return n, err == nil
}
