// Package app wires repositories, services and handlers into an engine.
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/catalog"
	"github.com/stemsi/academic-portal/internal/config"
	"github.com/stemsi/academic-portal/internal/handler"
	"github.com/stemsi/academic-portal/internal/metrics"
	"github.com/stemsi/academic-portal/internal/report"
	"github.com/stemsi/academic-portal/internal/repository"
	"github.com/stemsi/academic-portal/internal/router"
	"github.com/stemsi/academic-portal/internal/service"
	"github.com/stemsi/academic-portal/internal/validator"
)

// New builds the HTTP engine for cfg. Data files are not opened here;
// every request re-reads them.
func New(cfg *config.Config, log zerolog.Logger) (*gin.Engine, error) {
	validator.Setup()

	courses, err := catalog.Load(cfg.CourseCatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load course catalogue: %w", err)
	}
	log.Info().Int("courses", courses.Len()).Msg("Course catalogue loaded")

	// ─── Repositories ──────────────────────────────────────────────────
	studentRepo := repository.NewStudentRepository(cfg.Path(cfg.ProfileFile))
	attendanceRepo := repository.NewAttendanceRepository(cfg.Path(cfg.AttendanceFile))
	resultRepo := repository.NewResultRepository(cfg.Path(cfg.ResultsFile))
	cgpaRepo := repository.NewCGPARepository(cfg.Path(cfg.CGPAFile))
	credentialRepo := repository.NewCredentialRepository(cfg.Path(cfg.LoginFile))

	// ─── Services ──────────────────────────────────────────────────────
	header := report.Header{
		Institution:  cfg.InstitutionName,
		Department:   cfg.Department,
		AcademicYear: cfg.AcademicYear,
	}
	studentService := service.NewStudentService(studentRepo, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, courses, log)
	resultService := service.NewResultService(resultRepo, cfg.PassMarker, log)
	cgpaService := service.NewCGPAService(cgpaRepo, log)
	authService := service.NewAuthService(credentialRepo, cfg.SessionSecret, cfg.SessionTTL, log)
	reportService := service.NewReportService(
		studentService, attendanceService, resultService, cgpaService, courses, header, log,
	)

	// ─── Handlers ──────────────────────────────────────────────────────
	m := metrics.New()
	handlers := &router.Handlers{
		Student: handler.NewStudentHandler(studentService, attendanceService, resultService, cgpaService, m, log),
		Auth:    handler.NewAuthHandler(authService, m, log),
		Report:  handler.NewReportHandler(reportService, cfg.PassMarker, cfg.ShareCountryCode, m, log),
		Portal: handler.NewPortalHandler(
			reportService, authService, header, cfg.PassMarker, cfg.ShareCountryCode, m, log,
		),
		System: handler.NewSystemHandler([]handler.NamedSource{
			{Label: "profile", Source: studentRepo},
			{Label: "attendance", Source: attendanceRepo},
			{Label: "results", Source: resultRepo},
			{Label: "cgpa", Source: cgpaRepo},
			{Label: "login", Source: credentialRepo},
		}, log),
	}

	return router.SetupRouter(authService, handlers, m, cfg, log), nil
}
