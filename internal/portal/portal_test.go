package portal

import (
	"bytes"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stemsi/academic-portal/internal/model"
	"github.com/stemsi/academic-portal/internal/report"
	"github.com/stemsi/academic-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, v View) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Templates().ExecuteTemplate(&buf, "dashboard.html", v))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func sample() *report.Report {
	return &report.Report{
		Header:    report.Header{Institution: "Inst", Department: "Dept", AcademicYear: "2025-26"},
		StudentID: "2400030001",
		Student:   &model.Student{ID: "2400030001", Name: "Asha Rao", CounsellorName: "Ashesh K"},
		Attendance: []model.AttendanceRecord{
			{CourseCode: "24CS2101", Name: "OPERATING SYSTEMS", Attendance: 90},
			{CourseCode: "24MT2012", Name: "MATHEMATICAL OPTIMIZATION", Attendance: 80},
			{CourseCode: "24SC2006", Name: "OBJECT ORIENTED PROGRAMMING", Attendance: 60},
		},
		Grades: &model.GradeReport{
			Semesters: []model.SemesterResult{{Semester: "Semester 1", CGPA: "N/A", Courses: []model.CourseResult{
				{CourseCode: "23LE1001", Name: "CTSD", Grade: "O", Status: "P"},
				{CourseCode: "23LE1003", Name: "LACE", Grade: "F", Status: "F"},
			}}},
			Backlogs: 1,
		},
		CGPA:            model.CGPA{Value: "9.12", Found: true},
		CurrentSemester: 3,
		Term:            "ODD",
		GeneratedAt:     time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDashboard_Empty(t *testing.T) {
	doc := render(t, View{Header: report.Header{Institution: "Inst"}})

	assert.Equal(t, 0, doc.Find("#results").Length())
	assert.Equal(t, 0, doc.Find("#error").Length())
	assert.Equal(t, 0, doc.Find("#print-report").Length())
	assert.Equal(t, 1, doc.Find("form.search input[name=studentId]").Length())
}

func TestDashboard_Error(t *testing.T) {
	doc := render(t, View{Query: "123", Error: "ID 123 not found in records"})

	assert.Equal(t, "ID 123 not found in records", doc.Find("#error").Text())
	assert.Equal(t, 0, doc.Find("#results").Length())
	val, _ := doc.Find("input[name=studentId]").Attr("value")
	assert.Equal(t, "123", val)
}

func TestDashboard_Report(t *testing.T) {
	doc := render(t, View{Query: "2400030001", Report: sample(), PassMarker: "P"})

	assert.Equal(t, "9.12", doc.Find("#cgpa").Text())
	assert.True(t, doc.Find("#cgpa").HasClass("cgpa-excellent"))
	assert.Equal(t, "1", doc.Find("#backlogs").Text())
	assert.Contains(t, doc.Find("#attendance h2").Text(), "AY: 2025-26 ODD Semester Attendance")

	badges := doc.Find("#attendance tbody .badge")
	require.Equal(t, 3, badges.Length())
	assert.True(t, badges.Eq(0).HasClass("att-good"))
	assert.True(t, badges.Eq(1).HasClass("att-warning"))
	assert.True(t, badges.Eq(2).HasClass("att-low"))

	rows := doc.Find("#grades tbody tr")
	require.Equal(t, 2, rows.Length())
	assert.False(t, rows.Eq(0).HasClass("failed"))
	assert.True(t, rows.Eq(1).HasClass("failed"))

	assert.Equal(t, 1, doc.Find("#print-report").Length())
	assert.Contains(t, doc.Find("#print-report").Text(), "Student Academic Report - ID: 2400030001")
	assert.Contains(t, doc.Find("#print-report").Text(), "Attendance Report - Semester 3")

	href, _ := doc.Find(`a[href^="/report.pdf"]`).Attr("href")
	assert.Equal(t, "/report.pdf?studentId=2400030001", href)

	// Share is only offered to signed-in users.
	assert.Equal(t, 0, doc.Find(`a[href*="dialog=share"]`).Length())
}

func TestDashboard_Dialogs(t *testing.T) {
	t.Run("login dialog", func(t *testing.T) {
		doc := render(t, View{Dialog: DialogLogin, LoginError: MsgInvalidLogin})
		assert.Equal(t, 1, doc.Find("#login-dialog").Length())
		assert.Equal(t, MsgInvalidLogin, doc.Find("#login-error").Text())
	})

	t.Run("share dialog needs session", func(t *testing.T) {
		doc := render(t, View{Dialog: DialogShare, Report: sample()})
		assert.Equal(t, 0, doc.Find("#share-dialog").Length())
	})

	t.Run("share dialog when signed in", func(t *testing.T) {
		doc := render(t, View{Dialog: DialogShare, Report: sample(), LoginID: "faculty1"})
		assert.Equal(t, 1, doc.Find("#share-dialog").Length())
		assert.Equal(t, "faculty1", doc.Find("#login-id").Text())
		assert.Equal(t, 1, doc.Find(`a[href*="dialog=share"]`).Length())
	})
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "ID 42 not found in records", ErrorMessage("42", service.ErrStudentNotFound))
	assert.Equal(t, MsgNoAttendance, ErrorMessage("42", service.ErrNoAttendance))
	assert.Equal(t, MsgFetchFailed, ErrorMessage("42", errors.New("boom")))
}

func TestNormalizeDialog(t *testing.T) {
	assert.Equal(t, DialogLogin, NormalizeDialog("login"))
	assert.Equal(t, DialogShare, NormalizeDialog("share"))
	assert.Equal(t, "", NormalizeDialog("admin"))
}

func TestStatic(t *testing.T) {
	f, err := Static().Open("portal.css")
	require.NoError(t, err)
	defer f.Close()

	stat, err := f.Stat()
	require.NoError(t, err)
	assert.NotZero(t, stat.Size())

	_, err = Static().Open("missing.css")
	assert.Error(t, err)
	var _ http.FileSystem = Static()
}
