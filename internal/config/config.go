package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// DataDir is the directory holding the CSV exports. File names below
	// are resolved relative to it unless absolute.
	DataDir        string
	ProfileFile    string
	AttendanceFile string
	ResultsFile    string
	CGPAFile       string
	LoginFile      string

	// CourseCatalogFile overrides the embedded course catalogue when set.
	CourseCatalogFile string

	// PassMarker is the status value that counts as a cleared course.
	PassMarker string

	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string

	SessionSecret string
	SessionTTL    time.Duration

	AcademicYear     string
	InstitutionName  string
	Department       string
	ShareCountryCode string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "pretty"),
		DataDir:           getEnv("DATA_DIR", "./data"),
		ProfileFile:       getEnv("PROFILE_FILE", "Y24-EntireData.csv"),
		AttendanceFile:    getEnv("ATTENDANCE_FILE", "Y24-Attendance.csv"),
		ResultsFile:       getEnv("RESULTS_FILE", "Y4-Result.csv"),
		CGPAFile:          getEnv("CGPA_FILE", "CSE-CGPA.csv"),
		LoginFile:         getEnv("LOGIN_FILE", "login.csv"),
		CourseCatalogFile: getEnv("COURSE_CATALOG_FILE", ""),
		PassMarker:        getEnv("PASS_MARKER", "P"),
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		SessionSecret:     getEnv("SESSION_SECRET", "change-this-portal-session-secret"),
		SessionTTL:        time.Duration(getEnvInt("SESSION_TTL_HOURS", 8)) * time.Hour,
		AcademicYear:      getEnv("ACADEMIC_YEAR", "2025-26"),
		InstitutionName:   getEnv("INSTITUTION_NAME", "Koneru Lakshmaiah Education Foundation"),
		Department:        getEnv("DEPARTMENT", "Department of CSE-4"),
		ShareCountryCode:  getEnv("SHARE_COUNTRY_CODE", "91"),
	}
}

// Path resolves a data file name against DataDir.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// DataFiles returns every data file keyed by a short label, in a stable
// order used by health checks and the verifier.
func (c *Config) DataFiles() []DataFile {
	return []DataFile{
		{Label: "profile", Path: c.Path(c.ProfileFile)},
		{Label: "attendance", Path: c.Path(c.AttendanceFile)},
		{Label: "results", Path: c.Path(c.ResultsFile)},
		{Label: "cgpa", Path: c.Path(c.CGPAFile)},
		{Label: "login", Path: c.Path(c.LoginFile)},
	}
}

// DataFile pairs a data file with its label.
type DataFile struct {
	Label string
	Path  string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
