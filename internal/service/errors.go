package service

import "errors"

// Lookup outcomes surfaced to handlers.
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrNoAttendance       = errors.New("no attendance records found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid portal token")
)
