package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/flatfile"
	"github.com/stemsi/academic-portal/internal/model"
	"github.com/stemsi/academic-portal/internal/response"
)

// DataSource is a data file that can be checked for readability.
type DataSource interface {
	Path() string
	Check(ctx context.Context) error
}

// NamedSource labels a DataSource for health output.
type NamedSource struct {
	Label  string
	Source DataSource
}

// SystemHandler reports data file health and process statistics.
type SystemHandler struct {
	sources   []NamedSource
	startTime time.Time
	cpuModel  string
	log       zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(sources []NamedSource, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		sources:   sources,
		startTime: time.Now(),
		cpuModel:  readCPUModel(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

// Health godoc
// GET /health
// Parses every data file and reports which ones are unreadable.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	out := model.HealthReport{Status: "ok", Files: make([]model.FileStatus, 0, len(h.sources))}

	for _, s := range h.sources {
		st := model.FileStatus{Label: s.Label, OK: true}
		if err := s.Source.Check(ctx); err != nil {
			h.log.Warn().Err(err).Str("file", s.Source.Path()).Msg("data file unavailable")
			st.OK = false
			st.Reason = fileReason(err)
			out.Status = "degraded"
		}
		out.Files = append(out.Files, st)
	}

	if out.Status != "ok" {
		response.FailWithData(c, http.StatusServiceUnavailable, response.ErrDataUnavailable, out)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// fileReason maps a parser failure to a fixed label.
func fileReason(err error) string {
	switch {
	case errors.Is(err, flatfile.ErrFileNotFound):
		return model.FileReasonMissing
	case errors.Is(err, flatfile.ErrEmptyFile), errors.Is(err, flatfile.ErrNoHeader):
		return model.FileReasonEmpty
	case errors.Is(err, flatfile.ErrInvalidEncoding):
		return model.FileReasonEncoding
	default:
		return model.FileReasonUnreadable
	}
}

type systemStats struct {
	Timestamp int64  `json:"timestamp"`
	Uptime    string `json:"uptime"`

	LoadAvg1  float64 `json:"loadAvg1"`
	LoadAvg5  float64 `json:"loadAvg5"`
	LoadAvg15 float64 `json:"loadAvg15"`

	Goroutines  int    `json:"goroutines"`
	HeapAlloc   uint64 `json:"heapAlloc"`
	HeapSys     uint64 `json:"heapSys"`
	NumGC       uint32 `json:"numGC"`
	AppRSSBytes uint64 `json:"appRSSBytes"`
	GoVersion   string `json:"goVersion"`
	NumCPU      int    `json:"numCPU"`
	CPUModel    string `json:"cpuModel"`
}

// Stats godoc
// GET /api/v1/system
// Returns a snapshot of process and runtime statistics.
func (h *SystemHandler) Stats(c *gin.Context) {
	response.Success(c, http.StatusOK, h.collect())
}

func (h *SystemHandler) collect() systemStats {
	m := systemStats{
		Timestamp: time.Now().Unix(),
		Uptime:    formatDuration(time.Since(h.startTime)),
		GoVersion: runtime.Version(),
		NumCPU:    runtime.NumCPU(),
		CPUModel:  h.cpuModel,
	}

	m.LoadAvg1, m.LoadAvg5, m.LoadAvg15, _ = readLoadAvg()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.Goroutines = runtime.NumGoroutine()
	m.HeapAlloc = ms.HeapAlloc
	m.HeapSys = ms.HeapSys
	m.NumGC = ms.NumGC

	m.AppRSSBytes, _ = readProcessRSS()
	return m
}

// ---------- /proc Readers ----------

// readCPUModel parses /proc/cpuinfo to extract the "model name".
func readCPUModel() string {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return "Unknown"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "model name") {
			if _, v, ok := strings.Cut(line, ":"); ok {
				return strings.TrimSpace(v)
			}
		}
	}
	return "Unknown"
}

// readLoadAvg parses /proc/loadavg.
func readLoadAvg() (load1, load5, load15 float64, err error) {
	data, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return 0, 0, 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("unexpected /proc/loadavg format")
	}
	load1, _ = strconv.ParseFloat(fields[0], 64)
	load5, _ = strconv.ParseFloat(fields[1], 64)
	load15, _ = strconv.ParseFloat(fields[2], 64)
	return load1, load5, load15, nil
}

// readProcessRSS reads VmRSS from /proc/self/status.
func readProcessRSS() (uint64, error) {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "VmRSS:") {
			return parseKB(line), nil
		}
	}
	return 0, fmt.Errorf("VmRSS not found")
}

// parseKB reads lines like "VmRSS:   16384 kB" and returns bytes.
func parseKB(line string) uint64 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	val, _ := strconv.ParseUint(fields[1], 10, 64)
	return val * 1024
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
