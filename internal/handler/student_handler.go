package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/response"
	"github.com/stemsi/academic-portal/internal/service"
)

// StudentHandler serves the four per-student lookups.
type StudentHandler struct {
	students   *service.StudentService
	attendance *service.AttendanceService
	results    *service.ResultService
	cgpa       *service.CGPAService
	obs        Observer
	log        zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(
	students *service.StudentService,
	attendance *service.AttendanceService,
	results *service.ResultService,
	cgpa *service.CGPAService,
	obs Observer,
	log zerolog.Logger,
) *StudentHandler {
	return &StudentHandler{
		students:   students,
		attendance: attendance,
		results:    results,
		cgpa:       cgpa,
		obs:        obs,
		log:        log.With().Str("component", "student_handler").Logger(),
	}
}

// GetProfile godoc
// GET /api/v1/student?studentId=
// Returns the profile row for the student.
func (h *StudentHandler) GetProfile(c *gin.Context) {
	id, ok := bindStudentID(c)
	if !ok {
		return
	}

	student, err := h.students.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			h.obs.ObserveLookup("profile", outcomeNotFound)
			response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
			return
		}
		h.obs.ObserveLookup("profile", outcomeError)
		internalError(c, h.log, err, "profile lookup failed")
		return
	}

	h.obs.ObserveLookup("profile", outcomeFound)
	response.Success(c, http.StatusOK, student)
}

// GetAttendance godoc
// GET /api/v1/attendance?studentId=
// Returns every attendance row for the student. An empty list is not an error.
func (h *StudentHandler) GetAttendance(c *gin.Context) {
	id, ok := bindStudentID(c)
	if !ok {
		return
	}

	records, err := h.attendance.GetAttendance(c.Request.Context(), id)
	if err != nil {
		h.obs.ObserveLookup("attendance", outcomeError)
		internalError(c, h.log, err, "attendance lookup failed")
		return
	}

	outcome := outcomeFound
	if len(records) == 0 {
		outcome = outcomeNotFound
	}
	h.obs.ObserveLookup("attendance", outcome)
	response.Success(c, http.StatusOK, records)
}

// GetResults godoc
// GET /api/v1/results?studentId=
// Returns semester-wise grades and the backlog count.
func (h *StudentHandler) GetResults(c *gin.Context) {
	id, ok := bindStudentID(c)
	if !ok {
		return
	}

	grades, err := h.results.GetResults(c.Request.Context(), id)
	if err != nil {
		h.obs.ObserveLookup("results", outcomeError)
		internalError(c, h.log, err, "results lookup failed")
		return
	}

	outcome := outcomeFound
	if len(grades.Semesters) == 0 {
		outcome = outcomeNotFound
	}
	h.obs.ObserveLookup("results", outcome)
	response.Success(c, http.StatusOK, grades)
}

// GetCGPA godoc
// GET /api/v1/cgpa?studentId=
// Returns the CGPA. A missing row is a 404 that still carries "N/A".
func (h *StudentHandler) GetCGPA(c *gin.Context) {
	id, ok := bindStudentID(c)
	if !ok {
		return
	}

	cgpa, err := h.cgpa.GetCGPA(c.Request.Context(), id)
	if err != nil {
		h.obs.ObserveLookup("cgpa", outcomeError)
		internalError(c, h.log, err, "cgpa lookup failed")
		return
	}

	if !cgpa.Found {
		h.obs.ObserveLookup("cgpa", outcomeNotFound)
		response.FailWithData(c, http.StatusNotFound, response.ErrCGPANotFound, cgpa)
		return
	}

	h.obs.ObserveLookup("cgpa", outcomeFound)
	response.Success(c, http.StatusOK, cgpa)
}
