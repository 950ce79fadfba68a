package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrCredentialsMissing ErrCode = "CREDENTIALS_REQUIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation   ErrCode = "VALIDATION_ERROR"
	ErrInvalidPhone ErrCode = "INVALID_PHONE"

	// ─── Records ───────────────────────────────────────────────────────
	ErrStudentNotFound    ErrCode = "STUDENT_NOT_FOUND"
	ErrCGPANotFound       ErrCode = "CGPA_NOT_FOUND"
	ErrAttendanceNotFound ErrCode = "ATTENDANCE_NOT_FOUND"
	ErrNotFound           ErrCode = "NOT_FOUND"

	// ─── Routing ───────────────────────────────────────────────────────
	ErrMethodNotAllowed ErrCode = "METHOD_NOT_ALLOWED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrDataUnavailable ErrCode = "DATA_UNAVAILABLE"
	ErrInternal        ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid credentials"
	case ErrCredentialsMissing:
		return "ID and Password are required"

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPhone:
		return "Enter a valid phone number."

	// ─── Records ───────────────────────────────────────────────────────
	case ErrStudentNotFound:
		return "Student not found."
	case ErrCGPANotFound:
		return "CGPA not found."
	case ErrAttendanceNotFound:
		return "No attendance records found for this ID"
	case ErrNotFound:
		return "Resource not found."

	// ─── Routing ───────────────────────────────────────────────────────
	case ErrMethodNotAllowed:
		return "Method not allowed."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrDataUnavailable:
		return "One or more data files are unavailable."
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
