// Package client talks to the portal's JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stemsi/academic-portal/internal/catalog"
	"github.com/stemsi/academic-portal/internal/model"
	"github.com/stemsi/academic-portal/internal/report"
	"github.com/stemsi/academic-portal/internal/response"
	"github.com/stemsi/academic-portal/internal/service"
)

// DefaultBaseURL is where a locally started server listens.
const DefaultBaseURL = "http://localhost:8080"

// APIError is a non-success envelope returned by the server.
type APIError struct {
	Status  int
	Code    response.ErrCode
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		if e.Message != "" {
			return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
		}
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (%d): %s", e.Code, e.Status, e.Message)
}

// Client is a thin wrapper over the /api/v1 endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorBody `json:"error"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + "/api/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return http.NewRequestWithContext(ctx, method, u, body)
}

// getJSON decodes the envelope data into out. A non-2xx response is an
// *APIError; its data, if any, is still decoded into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("GET %s: decode data: %w", path, err)
		}
	}
	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	return nil
}

func studentQuery(id string) url.Values {
	return url.Values{"studentId": {strings.TrimSpace(id)}}
}

func isCode(err error, code response.ErrCode) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// Profile returns the student's profile or service.ErrStudentNotFound.
func (c *Client) Profile(ctx context.Context, id string) (*model.Student, error) {
	var s model.Student
	if err := c.getJSON(ctx, "/student", studentQuery(id), &s); err != nil {
		if isCode(err, response.ErrStudentNotFound) {
			return nil, service.ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Attendance returns every attendance row for the student.
func (c *Client) Attendance(ctx context.Context, id string) ([]model.AttendanceRecord, error) {
	records := []model.AttendanceRecord{}
	if err := c.getJSON(ctx, "/attendance", studentQuery(id), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Results returns the semester-wise grade report.
func (c *Client) Results(ctx context.Context, id string) (*model.GradeReport, error) {
	var g model.GradeReport
	if err := c.getJSON(ctx, "/results", studentQuery(id), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// CGPA returns the student's CGPA. A missing row yields "N/A" and no error.
func (c *Client) CGPA(ctx context.Context, id string) (model.CGPA, error) {
	var v model.CGPA
	err := c.getJSON(ctx, "/cgpa", studentQuery(id), &v)
	switch {
	case isCode(err, response.ErrCGPANotFound):
		return model.CGPA{StudentID: strings.TrimSpace(id), Value: model.NotAvailable}, nil
	case err != nil:
		return model.CGPA{}, err
	}
	v.Found = true
	return v, nil
}

// Report issues the CGPA, profile, attendance and results lookups in that
// order and merges them. It fails like the dashboard does: unknown IDs
// give service.ErrStudentNotFound and an empty attendance list gives
// service.ErrNoAttendance.
func (c *Client) Report(ctx context.Context, id string, header report.Header, courses *catalog.Catalog) (*report.Report, error) {
	id = strings.TrimSpace(id)

	cgpa, err := c.CGPA(ctx, id)
	if err != nil {
		return nil, err
	}
	student, err := c.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	attendance, err := c.Attendance(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(attendance) == 0 {
		return nil, service.ErrNoAttendance
	}
	grades, err := c.Results(ctx, id)
	if err != nil {
		return nil, err
	}
	grades = grades.FirstSemesters(courses.VisibleSemesters(id))

	semester := courses.CurrentSemester(id)
	return &report.Report{
		Header:          header,
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

// Login checks a credential pair. A rejected pair is not an error: the
// response carries Success=false and the server's message.
func (c *Client) Login(ctx context.Context, loginID, password string) (model.LoginResponse, error) {
	body, err := json.Marshal(model.LoginRequest{LoginID: loginID, LoginPassword: password})
	if err != nil {
		return model.LoginResponse{}, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/login", nil, bytes.NewReader(body))
	if err != nil {
		return model.LoginResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("POST /login: %w", err)
	}
	defer resp.Body.Close()

	var out model.LoginResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusBadRequest, http.StatusUnauthorized:
	default:
		return model.LoginResponse{}, &APIError{Status: resp.StatusCode, Message: out.Message}
	}
	if decodeErr != nil {
		return model.LoginResponse{}, fmt.Errorf("POST /login: decode: %w", decodeErr)
	}
	return out, nil
}

// ShareLink returns the wa.me link and message for sending the report to phone.
func (c *Client) ShareLink(ctx context.Context, id, phone string) (link, message string, err error) {
	q := studentQuery(id)
	q.Set("phone", phone)

	var out struct {
		URL     string `json:"url"`
		Message string `json:"message"`
	}
	if err := c.getJSON(ctx, "/share", q, &out); err != nil {
		return "", "", err
	}
	return out.URL, out.Message, nil
}

// DownloadPDF streams the PDF report into w.
func (c *Client) DownloadPDF(ctx context.Context, id string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/report/pdf", studentQuery(id), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET /report/pdf: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		var env envelope
		if json.NewDecoder(resp.Body).Decode(&env) == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("GET /report/pdf: %w", err)
	}
	return nil
}
