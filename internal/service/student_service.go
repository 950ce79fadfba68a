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

// StudentStore looks up student profiles.
type StudentStore interface {
	GetByID(ctx context.Context, id string) (*model.Student, error)
}

// StudentService handles profile lookups.
type StudentService struct {
	store StudentStore
	log   zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(store StudentStore, log zerolog.Logger) *StudentService {
	return &StudentService{
		store: store,
		log:   log.With().Str("component", "student_service").Logger(),
	}
}

// GetProfile returns the profile for studentID or ErrStudentNotFound.
func (s *StudentService) GetProfile(ctx context.Context, studentID string) (*model.Student, error) {
	id := strings.TrimSpace(studentID)

	student, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		s.log.Error().Err(err).Str("student_id", id).Msg("failed to read profile")
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return student, nil
}
