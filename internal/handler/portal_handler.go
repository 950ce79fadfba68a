package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/middleware"
	"github.com/stemsi/academic-portal/internal/portal"
	"github.com/stemsi/academic-portal/internal/report"
	"github.com/stemsi/academic-portal/internal/service"
)

const dashboardTemplate = "dashboard.html"

// PortalHandler serves the server-rendered dashboard and its dialogs.
type PortalHandler struct {
	reports     *service.ReportService
	authService *service.AuthService
	header      report.Header
	passMarker  string
	countryCode string
	obs         Observer
	log         zerolog.Logger
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(
	reports *service.ReportService,
	authService *service.AuthService,
	header report.Header,
	passMarker, countryCode string,
	obs Observer,
	log zerolog.Logger,
) *PortalHandler {
	return &PortalHandler{
		reports:     reports,
		authService: authService,
		header:      header,
		passMarker:  passMarker,
		countryCode: countryCode,
		obs:         obs,
		log:         log.With().Str("component", "portal_handler").Logger(),
	}
}

// view assembles the dashboard state for studentID, building the report
// when an ID was given.
func (h *PortalHandler) view(c *gin.Context, studentID, dialog string) portal.View {
	v := portal.View{
		Header:     h.header,
		Query:      strings.TrimSpace(studentID),
		Dialog:     portal.NormalizeDialog(dialog),
		PassMarker: h.passMarker,
	}
	if claims := middleware.GetPortalClaims(c); claims != nil {
		v.LoginID = claims.LoginID
	}
	if v.Query == "" {
		return v
	}

	r, err := h.reports.Build(c.Request.Context(), v.Query)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, service.ErrNoAttendance):
			h.obs.ObserveLookup("report", outcomeNotFound)
		default:
			h.obs.ObserveLookup("report", outcomeError)
			h.log.Error().Err(err).Str("student_id", v.Query).Msg("dashboard lookup failed")
		}
		v.Error = portal.ErrorMessage(v.Query, err)
		return v
	}

	h.obs.ObserveLookup("report", outcomeFound)
	v.Report = r
	return v
}

func (h *PortalHandler) render(c *gin.Context, status int, v portal.View) {
	c.HTML(status, dashboardTemplate, v)
}

// Dashboard godoc
// GET /?studentId=&dialog=
// Renders the search page, and the report when an ID is given.
func (h *PortalHandler) Dashboard(c *gin.Context) {
	h.render(c, http.StatusOK, h.view(c, c.Query("studentId"), c.Query("dialog")))
}

// Login godoc
// POST /login
// Checks the submitted pair and stores the login ID in a signed cookie.
func (h *PortalHandler) Login(c *gin.Context) {
	studentID := c.PostForm("studentId")
	loginID := strings.TrimSpace(c.PostForm("loginId"))
	password := c.PostForm("loginPassword")

	if loginID == "" || password == "" {
		v := h.view(c, studentID, portal.DialogLogin)
		v.LoginError = portal.MsgMissingLogin
		h.render(c, http.StatusBadRequest, v)
		return
	}

	err := h.authService.Authenticate(c.Request.Context(), loginID, password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		h.obs.ObserveLogin(false)
		v := h.view(c, studentID, portal.DialogLogin)
		v.LoginError = portal.MsgInvalidLogin
		h.render(c, http.StatusUnauthorized, v)
		return
	case err != nil:
		h.log.Error().Err(err).Msg("dashboard login failed")
		v := h.view(c, studentID, portal.DialogLogin)
		v.LoginError = portal.MsgFetchFailed
		h.render(c, http.StatusInternalServerError, v)
		return
	}

	token, err := h.authService.IssuePortalToken(loginID)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to sign portal token")
		v := h.view(c, studentID, portal.DialogLogin)
		v.LoginError = portal.MsgFetchFailed
		h.render(c, http.StatusInternalServerError, v)
		return
	}

	h.obs.ObserveLogin(true)
	middleware.SetPortalCookie(c, token, int(h.authService.SessionTTL().Seconds()))
	c.Redirect(http.StatusSeeOther, dashboardURL(studentID))
}

// Logout godoc
// POST /logout
// Clears the portal session cookie.
func (h *PortalHandler) Logout(c *gin.Context) {
	middleware.ClearPortalCookie(c)
	c.Redirect(http.StatusSeeOther, dashboardURL(c.PostForm("studentId")))
}

// Share godoc
// POST /share
// Redirects to a WhatsApp chat pre-filled with the report summary.
// Requires a portal session.
func (h *PortalHandler) Share(c *gin.Context) {
	v := h.view(c, c.PostForm("studentId"), portal.DialogShare)
	if v.Report == nil {
		h.render(c, http.StatusOK, v)
		return
	}

	link, err := report.ShareLink(c.PostForm("phone"), h.countryCode, report.ShareMessage(v.Report))
	if err != nil {
		v.ShareError = portal.MsgInvalidPhone
		h.render(c, http.StatusBadRequest, v)
		return
	}

	h.log.Info().
		Str("student_id", v.Report.StudentID).
		Str("login_id", v.LoginID).
		Msg("report shared")
	c.Redirect(http.StatusSeeOther, link)
}

// ReportPDF godoc
// GET /report.pdf?studentId=
// Downloads the printable report. Lookup failures go back to the
// dashboard, which shows the error.
func (h *PortalHandler) ReportPDF(c *gin.Context) {
	studentID := strings.TrimSpace(c.Query("studentId"))
	if studentID == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	r, err := h.reports.Build(c.Request.Context(), studentID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, dashboardURL(studentID))
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, r, h.passMarker); err != nil {
		h.log.Error().Err(err).Str("student_id", studentID).Msg("pdf render failed")
		c.Redirect(http.StatusSeeOther, dashboardURL(studentID))
		return
	}
	attachment(c, "report-"+r.StudentID+".pdf")
	c.Data(http.StatusOK, contentTypePDF, buf.Bytes())
}

func dashboardURL(studentID string) string {
	id := strings.TrimSpace(studentID)
	if id == "" {
		return "/"
	}
	return "/?" + url.Values{"studentId": {id}}.Encode()
}
