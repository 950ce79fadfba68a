package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/model"
	"github.com/stemsi/academic-portal/internal/response"
	"github.com/stemsi/academic-portal/internal/validator"
)

// Observer receives lookup and login outcomes for metrics.
type Observer interface {
	ObserveLookup(kind, outcome string)
	ObserveLogin(success bool)
}

// Lookup outcomes reported to the Observer.
const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// bindStudentID validates the studentId query parameter and writes a 400
// on failure.
func bindStudentID(c *gin.Context) (string, bool) {
	var q model.LookupQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return "", false
	}
	return strings.TrimSpace(q.StudentID), true
}

// internalError logs err with the request ID and writes a generic 500.
func internalError(c *gin.Context, log zerolog.Logger, err error, msg string) {
	log.Error().
		Err(err).
		Str("request_id", response.RequestID(c)).
		Str("path", c.Request.URL.Path).
		Msg(msg)
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
