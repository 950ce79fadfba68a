package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/model"
	"github.com/stemsi/academic-portal/internal/repository"
)

// CGPAStore looks up a student's CGPA cell.
type CGPAStore interface {
	GetByStudent(ctx context.Context, studentID string) (string, error)
}

// CGPAService handles CGPA lookups.
type CGPAService struct {
	store CGPAStore
	log   zerolog.Logger
}

// NewCGPAService creates a new CGPAService.
func NewCGPAService(store CGPAStore, log zerolog.Logger) *CGPAService {
	return &CGPAService{
		store: store,
		log:   log.With().Str("component", "cgpa_service").Logger(),
	}
}

// GetCGPA returns the student's CGPA. A missing row is not an error: the
// result carries Found=false and the "N/A" sentinel.
func (s *CGPAService) GetCGPA(ctx context.Context, studentID string) (model.CGPA, error) {
	id := strings.TrimSpace(studentID)

	value, err := s.store.GetByStudent(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.log.Debug().Str("student_id", id).Msg("no CGPA on record")
		return model.CGPA{StudentID: id, Value: model.NotAvailable}, nil
	case err != nil:
		s.log.Error().Err(err).Str("student_id", id).Msg("failed to read CGPA")
		return model.CGPA{}, fmt.Errorf("get cgpa: %w", err)
	}

	if value == "" {
		value = model.NotAvailable
	}
	return model.CGPA{StudentID: id, Value: value, Found: true}, nil
}
