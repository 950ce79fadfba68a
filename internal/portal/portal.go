// Package portal renders the server-side dashboard.
package portal

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/stemsi/academic-portal/internal/report"
	"github.com/stemsi/academic-portal/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Dialogs that can be opened through the dialog query parameter.
const (
	DialogLogin = "login"
	DialogShare = "share"
)

// Dashboard error messages.
const (
	MsgNoAttendance = "No attendance records found for this ID"
	MsgFetchFailed  = "Failed to fetch data. Please try again."
	MsgInvalidLogin = "Invalid credentials"
	MsgMissingLogin = "ID and Password are required"
	MsgInvalidPhone = "Enter a valid phone number"
)

// View is the complete state of one dashboard render.
type View struct {
	report.Header

	// Query is the ID typed into the search box.
	Query string

	// Report is nil unless the lookup succeeded.
	Report *report.Report

	Error      string
	LoginID    string
	Dialog     string
	LoginError string
	ShareError string
	PassMarker string
}

// SignedIn reports whether a portal session is active.
func (v View) SignedIn() bool {
	return v.LoginID != ""
}

// ShowDialog reports whether the named dialog is open. The share dialog
// needs a session and a report to share.
func (v View) ShowDialog(name string) bool {
	if v.Dialog != name {
		return false
	}
	if name == DialogShare {
		return v.SignedIn() && v.Report != nil
	}
	return true
}

// ErrorMessage maps a report build failure to the text shown to users.
func ErrorMessage(studentID string, err error) string {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return fmt.Sprintf("ID %s not found in records", studentID)
	case errors.Is(err, service.ErrNoAttendance):
		return MsgNoAttendance
	default:
		return MsgFetchFailed
	}
}

// NormalizeDialog drops unknown dialog names.
func NormalizeDialog(name string) string {
	switch name {
	case DialogLogin, DialogShare:
		return name
	}
	return ""
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("portal").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// Static serves the embedded stylesheet and assets.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

var funcs = template.FuncMap{
	"attendanceBand": func(pct int) string { return string(report.AttendanceBand(pct)) },
	"cgpaBand":       func(cgpa string) string { return string(report.CGPABand(cgpa)) },
	"failed":         report.Failed,
	"upper":          strings.ToUpper,
	"date":           func(t time.Time) string { return t.Format("02 Jan 2006, 3:04 PM") },
}
