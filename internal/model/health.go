package model

// FileStatus reports whether a data file is readable. Reason is one of
// the FileReason values; paths and parser detail are only logged.
type FileStatus struct {
	Label  string `json:"label"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// Reasons a data file can fail its health check.
const (
	FileReasonMissing    = "missing"
	FileReasonEmpty      = "empty"
	FileReasonEncoding   = "invalid_encoding"
	FileReasonUnreadable = "unreadable"
)

// HealthReport is returned by the health endpoint.
type HealthReport struct {
	Status string       `json:"status"`
	Files  []FileStatus `json:"files"`
}
