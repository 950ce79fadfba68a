package handler

import (
	"bytes"
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/model"
	"github.com/stemsi/academic-portal/internal/report"
	"github.com/stemsi/academic-portal/internal/response"
	"github.com/stemsi/academic-portal/internal/service"
	"github.com/stemsi/academic-portal/internal/validator"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePNG  = "image/png"
)

// ReportHandler serves the merged report and its downloads.
type ReportHandler struct {
	reports     *service.ReportService
	passMarker  string
	countryCode string
	obs         Observer
	log         zerolog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(
	reports *service.ReportService,
	passMarker, countryCode string,
	obs Observer,
	log zerolog.Logger,
) *ReportHandler {
	return &ReportHandler{
		reports:     reports,
		passMarker:  passMarker,
		countryCode: countryCode,
		obs:         obs,
		log:         log.With().Str("component", "report_handler").Logger(),
	}
}

// build runs the report lookups and writes the error response on failure.
func (h *ReportHandler) build(c *gin.Context, id string) (*report.Report, bool) {
	r, err := h.reports.Build(c.Request.Context(), id)
	switch {
	case err == nil:
		h.obs.ObserveLookup("report", outcomeFound)
		return r, true
	case errors.Is(err, service.ErrStudentNotFound):
		h.obs.ObserveLookup("report", outcomeNotFound)
		response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
	case errors.Is(err, service.ErrNoAttendance):
		h.obs.ObserveLookup("report", outcomeNotFound)
		response.Fail(c, http.StatusNotFound, response.ErrAttendanceNotFound)
	default:
		h.obs.ObserveLookup("report", outcomeError)
		internalError(c, h.log, err, "report build failed")
	}
	return nil, false
}

// GetReport godoc
// GET /api/v1/report?studentId=
// Returns profile, attendance, grades and CGPA in one payload.
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := bindStudentID(c)
	if !ok {
		return
	}
	r, ok := h.build(c, id)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, r)
}

// GetReportPDF godoc
// GET /api/v1/report/pdf?studentId=
// Downloads the printable report as PDF.
func (h *ReportHandler) GetReportPDF(c *gin.Context) {
	id, ok := bindStudentID(c)
	if !ok {
		return
	}
	r, ok := h.build(c, id)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, r, h.passMarker); err != nil {
		internalError(c, h.log, err, "pdf render failed")
		return
	}
	attachment(c, "report-"+r.StudentID+".pdf")
	c.Data(http.StatusOK, contentTypePDF, buf.Bytes())
}

// GetReportXLSX godoc
// GET /api/v1/report/xlsx?studentId=
// Downloads the report as a spreadsheet with one sheet per section.
func (h *ReportHandler) GetReportXLSX(c *gin.Context) {
	id, ok := bindStudentID(c)
	if !ok {
		return
	}
	r, ok := h.build(c, id)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, r); err != nil {
		internalError(c, h.log, err, "xlsx render failed")
		return
	}
	attachment(c, "report-"+r.StudentID+".xlsx")
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// shareLink validates the share query and returns the wa.me link and its message.
func (h *ReportHandler) shareLink(c *gin.Context) (string, string, bool) {
	var q model.ShareQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return "", "", false
	}
	if _, err := report.NormalizePhone(q.Phone, h.countryCode); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPhone)
		return "", "", false
	}

	r, ok := h.build(c, q.StudentID)
	if !ok {
		return "", "", false
	}

	msg := report.ShareMessage(r)
	link, err := report.ShareLink(q.Phone, h.countryCode, msg)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPhone)
		return "", "", false
	}
	return link, msg, true
}

// GetShareLink godoc
// GET /api/v1/share?studentId=&phone=
// Returns a WhatsApp link that opens a chat with the report summary.
func (h *ReportHandler) GetShareLink(c *gin.Context) {
	link, msg, ok := h.shareLink(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": link, "message": msg})
}

// GetShareQR godoc
// GET /api/v1/share/qr?studentId=&phone=
// Returns the share link encoded as a PNG QR code.
func (h *ReportHandler) GetShareQR(c *gin.Context) {
	link, _, ok := h.shareLink(c)
	if !ok {
		return
	}

	png, err := report.QRCode(link, report.DefaultQRSize)
	if err != nil {
		internalError(c, h.log, err, "qr render failed")
		return
	}
	c.Data(http.StatusOK, contentTypePNG, png)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
}
