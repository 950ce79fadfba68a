package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/app"
	"github.com/stemsi/academic-portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	profileCSV = `Student Unique Enrolment ID,Name of the student,Gender,DayScholar/Hostler,Contact No,Postel Address,Name of the Mentor,Designation,Mentor Contact No
2400030001,Asha Rao,Female,Hostler,9876543210,"House 12, Sector 15",Ashesh K,Assistant Professor,9000000001
2400030002,Ravi Teja,Male,DayScholar,9876500000,Vijayawada,Ashesh K,Assistant Professor,9000000001
2400030003,Kiran Das,Male,DayScholar,9876511111,Guntur,Ashesh K,Assistant Professor,9000000001
`
	attendanceCSV = `student_uni_id,coursecode,attendance,,
2400030001,24CS2101,92,,
2400030001,24MT2012,78.6,,
2400030001,99XX0000,60,,
2400030002,24CS2101,88,,
`
	resultsCSV = `ID,SEMESTER,CC,CD,GRADE,STATUS
2400030001,2,23SC1202,DS,A,P
2400030001,1,23LE1001,CTSD,O,P
2400030001,1,23LE1003,LACE,F,F
`
	cgpaCSV  = "Student ID,CGPA\n2400030001,9.12\n"
	loginCSV = "ID,Password\nfaculty1,secret\n"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
}

type testServer struct {
	engine *gin.Engine
	cfg    *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		GinMode:          gin.TestMode,
		DataDir:          dir,
		ProfileFile:      "profile.csv",
		AttendanceFile:   "attendance.csv",
		ResultsFile:      "results.csv",
		CGPAFile:         "cgpa.csv",
		LoginFile:        "login.csv",
		PassMarker:       "P",
		SessionSecret:    "test-secret",
		SessionTTL:       time.Hour,
		AcademicYear:     "2025-26",
		InstitutionName:  "Test Institute",
		Department:       "Department of CSE-4",
		ShareCountryCode: "91",
	}

	files := map[string]string{
		cfg.ProfileFile:    profileCSV,
		cfg.AttendanceFile: attendanceCSV,
		cfg.ResultsFile:    resultsCSV,
		cfg.CGPAFile:       cgpaCSV,
		cfg.LoginFile:      loginCSV,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	engine, err := app.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	return &testServer{engine: engine, cfg: cfg}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *testServer) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.do(req)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestGetProfile(t *testing.T) {
	s := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		w := s.get("/api/v1/student?studentId=2400030001")
		require.Equal(t, http.StatusOK, w.Code)

		env := decode(t, w)
		assert.Nil(t, env.Error)
		assert.NotEmpty(t, env.Metadata.RequestID)

		var student map[string]string
		require.NoError(t, json.Unmarshal(env.Data, &student))
		assert.Equal(t, "Asha Rao", student["name"])
		assert.Equal(t, "House 12, Sector 15", student["address"])
		assert.Equal(t, "Ashesh K", student["counsellorName"])
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	})

	t.Run("trimmed id", func(t *testing.T) {
		w := s.get("/api/v1/student?studentId=%202400030001%20")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		w := s.get("/api/v1/student?studentId=999")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "STUDENT_NOT_FOUND", decode(t, w).Error.Code)
	})

	t.Run("validation", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/student",
			"/api/v1/student?studentId=%20%20",
			"/api/v1/student?studentId=" + strings.Repeat("9", 65),
		} {
			w := s.get(path)
			require.Equal(t, http.StatusBadRequest, w.Code, path)
			env := decode(t, w)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
			assert.Contains(t, env.Error.Fields, "studentId")
		}
	})
}

func TestGetAttendance(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/api/v1/attendance?studentId=2400030001")
	require.Equal(t, http.StatusOK, w.Code)

	var records []struct {
		CourseCode string `json:"courseCode"`
		Attendance int    `json:"attendance"`
		Name       string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &records))
	require.Len(t, records, 3)
	assert.Equal(t, "OPERATING SYSTEMS", records[0].Name)
	assert.Equal(t, 78, records[1].Attendance)
	assert.Equal(t, "99XX0000", records[2].Name)

	w = s.get("/api/v1/attendance?studentId=999")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(decode(t, w).Data))
}

func TestGetResults(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/api/v1/results?studentId=2400030001")
	require.Equal(t, http.StatusOK, w.Code)

	var grades struct {
		Semesters []struct {
			Semester string `json:"semester"`
			Courses  []struct {
				CourseCode string `json:"courseCode"`
			} `json:"courses"`
		} `json:"semesters"`
		Backlogs int `json:"backlogs"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &grades))
	require.Len(t, grades.Semesters, 2)
	assert.Equal(t, "Semester 1", grades.Semesters[0].Semester)
	assert.Equal(t, "23LE1001", grades.Semesters[0].Courses[0].CourseCode)
	assert.Equal(t, "23LE1003", grades.Semesters[0].Courses[1].CourseCode)
	assert.Equal(t, "Semester 2", grades.Semesters[1].Semester)
	assert.Equal(t, 1, grades.Backlogs)
}

func TestGetCGPA(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/api/v1/cgpa?studentId=2400030001")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"studentId":"2400030001","cgpa":"9.12"}`, string(decode(t, w).Data))

	w = s.get("/api/v1/cgpa?studentId=2400030002")
	require.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.Equal(t, "CGPA_NOT_FOUND", env.Error.Code)
	assert.Equal(t, "CGPA not found.", env.Error.Message)
	assert.JSONEq(t, `{"studentId":"2400030002","cgpa":"N/A"}`, string(env.Data))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		want       string
	}{
		{"success", `{"loginId":"faculty1","loginPassword":"secret"}`, http.StatusOK, `{"success":true,"message":"Login successful"}`},
		{"trimmed id", `{"loginId":" faculty1 ","loginPassword":"secret"}`, http.StatusOK, `{"success":true,"message":"Login successful"}`},
		{"wrong password", `{"loginId":"faculty1","loginPassword":"Secret"}`, http.StatusUnauthorized, `{"success":false,"message":"Invalid credentials"}`},
		{"unknown id", `{"loginId":"nobody","loginPassword":"secret"}`, http.StatusUnauthorized, `{"success":false,"message":"Invalid credentials"}`},
		{"missing password", `{"loginId":"faculty1"}`, http.StatusBadRequest, `{"success":false,"message":"ID and Password are required"}`},
		{"malformed", `{`, http.StatusBadRequest, `{"success":false,"message":"ID and Password are required"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.postJSON("/api/v1/login", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestLogin_ServerError(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, os.Remove(s.cfg.Path(s.cfg.LoginFile)))

	w := s.postJSON("/api/v1/login", `{"loginId":"faculty1","loginPassword":"secret"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "login.csv")
}

func TestGetReport(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/api/v1/report?studentId=2400030001")
	require.Equal(t, http.StatusOK, w.Code)

	var r struct {
		StudentID       string `json:"studentId"`
		CurrentSemester int    `json:"currentSemester"`
		Term            string `json:"term"`
		AcademicYear    string `json:"academicYear"`
		CGPA            struct {
			Value string `json:"cgpa"`
		} `json:"cgpa"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &r))
	assert.Equal(t, "2400030001", r.StudentID)
	assert.Equal(t, 3, r.CurrentSemester)
	assert.Equal(t, "ODD", r.Term)
	assert.Equal(t, "2025-26", r.AcademicYear)
	assert.Equal(t, "9.12", r.CGPA.Value)

	w = s.get("/api/v1/report?studentId=999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "STUDENT_NOT_FOUND", decode(t, w).Error.Code)

	w = s.get("/api/v1/report?studentId=2400030003")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ATTENDANCE_NOT_FOUND", decode(t, w).Error.Code)
}

func TestReportDownloads(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/api/v1/report/pdf?studentId=2400030001")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report-2400030001.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))

	w = s.get("/api/v1/report/xlsx?studentId=2400030001")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report-2400030001.xlsx")
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))

	w = s.get("/api/v1/report/xlsx?studentId=999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShare(t *testing.T) {
	s := newTestServer(t)

	t.Run("link", func(t *testing.T) {
		w := s.get("/api/v1/share?studentId=2400030001&phone=98765%2043210")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			URL     string `json:"url"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &body))
		assert.True(t, strings.HasPrefix(body.URL, "https://wa.me/919876543210?text="))
		assert.Contains(t, body.Message, "CGPA: 9.12")
	})

	t.Run("invalid phone", func(t *testing.T) {
		w := s.get("/api/v1/share?studentId=2400030001&phone=12ab")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_PHONE", decode(t, w).Error.Code)
	})

	t.Run("missing phone", func(t *testing.T) {
		w := s.get("/api/v1/share?studentId=2400030001")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w).Error.Fields, "phone")
	})

	t.Run("qr", func(t *testing.T) {
		w := s.get("/api/v1/share/qr?studentId=2400030002&phone=9876543210")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))
	})
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"status":"ok"`)

	require.NoError(t, os.Remove(s.cfg.Path(s.cfg.CGPAFile)))
	require.NoError(t, os.WriteFile(s.cfg.Path(s.cfg.LoginFile), []byte("ID,Password\n1,\xff\n"), 0o644))

	w = s.get("/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	env := decode(t, w)
	assert.Equal(t, "DATA_UNAVAILABLE", env.Error.Code)

	var report struct {
		Status string `json:"status"`
		Files  []struct {
			Label  string `json:"label"`
			OK     bool   `json:"ok"`
			Reason string `json:"reason"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "degraded", report.Status)
	require.Len(t, report.Files, 5)
	assert.True(t, report.Files[0].OK)
	assert.Empty(t, report.Files[0].Reason)
	assert.Equal(t, "cgpa", report.Files[3].Label)
	assert.False(t, report.Files[3].OK)
	assert.Equal(t, "missing", report.Files[3].Reason)
	assert.Equal(t, "login", report.Files[4].Label)
	assert.Equal(t, "invalid_encoding", report.Files[4].Reason)

	body := w.Body.String()
	assert.NotContains(t, body, s.cfg.DataDir)
	assert.NotContains(t, body, "cgpa.csv")
	assert.NotContains(t, body, "UTF-8")
}

func TestMissingDataFile(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, os.Remove(s.cfg.Path(s.cfg.ProfileFile)))

	w := s.get("/api/v1/student?studentId=2400030001")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	assert.NotContains(t, w.Body.String(), "profile.csv")
}

func TestSystemStats(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/api/v1/system")
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.Contains(t, stats, "uptime")
	assert.Contains(t, stats, "goroutines")
}

func TestRouting(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodPost, "/api/v1/student?studentId=1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decode(t, w).Error.Code)

	w = s.get("/api/v1/login")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = s.get("/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)

	s.get("/api/v1/student?studentId=2400030001")
	s.get("/api/v1/cgpa?studentId=2400030002")
	s.postJSON("/api/v1/login", `{"loginId":"faculty1","loginPassword":"nope"}`)

	w := s.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `academic_portal_record_lookups_total{kind="profile",outcome="found"} 1`)
	assert.Contains(t, body, `academic_portal_record_lookups_total{kind="cgpa",outcome="not_found"} 1`)
	assert.Contains(t, body, `academic_portal_login_attempts_total{result="failure"} 1`)
	assert.Contains(t, body, `route="/api/v1/student"`)
}

func TestBrotli(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/report/pdf?studentId=2400030001", nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=0.9")
	w := s.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))

	body, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}
