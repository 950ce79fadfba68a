package repository

import (
	"context"
	"errors"

	"github.com/stemsi/academic-portal/internal/flatfile"
)

// ErrNotFound is returned when no row matches a lookup.
var ErrNotFound = errors.New("record not found")

// source is a CSV export that is re-read on every call.
type source struct {
	path string
	opts flatfile.Options
}

func (s source) load(ctx context.Context) (*flatfile.Table, error) {
	return flatfile.ReadFile(ctx, s.path, s.opts)
}

// Path returns the file backing the repository.
func (s source) Path() string {
	return s.path
}

// Check parses the whole file and reports any failure.
func (s source) Check(ctx context.Context) error {
	_, err := s.Scan(ctx)
	return err
}

// Scan parses the whole file with the repository's options.
func (s source) Scan(ctx context.Context) (*flatfile.Table, error) {
	return s.load(ctx)
}
