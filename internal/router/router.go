package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/config"
	"github.com/stemsi/academic-portal/internal/handler"
	"github.com/stemsi/academic-portal/internal/metrics"
	"github.com/stemsi/academic-portal/internal/middleware"
	"github.com/stemsi/academic-portal/internal/portal"
	"github.com/stemsi/academic-portal/internal/response"
)

// staticMaxAge is the cache lifetime of embedded assets (1 day).
const staticMaxAge = 86400

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student *handler.StudentHandler
	Auth    *handler.AuthHandler
	Report  *handler.ReportHandler
	Portal  *handler.PortalHandler
	System  *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	sessions middleware.TokenValidator,
	handlers *Handlers,
	m *metrics.Metrics,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		response.Fail(c, http.StatusMethodNotAllowed, response.ErrMethodNotAllowed)
	})

	router.GET("/health", handlers.System.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// ─── 1. Dashboard (server-rendered) ────────────────────────────────
	router.SetHTMLTemplate(portal.Templates())

	assets := router.Group("/static")
	assets.Use(middleware.CacheControl(staticMaxAge))
	{
		assets.StaticFS("/", portal.Static())
	}

	pages := router.Group("/")
	pages.Use(middleware.NoStore(), middleware.PortalSession(sessions))
	{
		pages.GET("/", handlers.Portal.Dashboard)
		pages.GET("/report.pdf", handlers.Portal.ReportPDF)
		pages.POST("/login", handlers.Portal.Login)
		pages.POST("/logout", handlers.Portal.Logout)
		pages.POST("/share", middleware.RequirePortalSession(), handlers.Portal.Share)
	}

	// ─── 2. JSON API (public) ──────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())
	{
		api.GET("/student", handlers.Student.GetProfile)
		api.GET("/attendance", handlers.Student.GetAttendance)
		api.GET("/results", handlers.Student.GetResults)
		api.GET("/cgpa", handlers.Student.GetCGPA)
		api.POST("/login", handlers.Auth.Login)

		api.GET("/report", handlers.Report.GetReport)
		api.GET("/report/pdf", handlers.Report.GetReportPDF)
		api.GET("/report/xlsx", handlers.Report.GetReportXLSX)
		api.GET("/share", handlers.Report.GetShareLink)
		api.GET("/share/qr", handlers.Report.GetShareQR)

		api.GET("/system", handlers.System.Stats)
	}

	return router
}
