package report

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// ErrInvalidPhone is returned for numbers that cannot be dialled.
var ErrInvalidPhone = errors.New("invalid phone number")

const shareBase = "https://wa.me/"

// NormalizePhone strips formatting from phone and prefixes countryCode to
// bare ten-digit numbers.
func NormalizePhone(phone, countryCode string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", ErrInvalidPhone
		}
	}

	digits := b.String()
	if len(digits) == 10 {
		digits = countryCode + digits
	}
	if len(digits) < 10 || len(digits) > 15 {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

// ShareMessage is the plain-text summary sent with a share link.
func ShareMessage(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Academic report for %s", r.StudentID)
	if name := r.Name(); name != "" {
		fmt.Fprintf(&b, " (%s)", name)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "CGPA: %s\n", r.CGPA.Value)
	fmt.Fprintf(&b, "Backlogs: %d\n", r.Backlogs())

	if len(r.Attendance) > 0 {
		fmt.Fprintf(&b, "Attendance (Semester %d):\n", r.CurrentSemester)
		for _, a := range r.Attendance {
			fmt.Fprintf(&b, "- %s %s: %d%%\n", a.CourseCode, a.Name, a.Attendance)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// ShareLink builds a wa.me link that opens a chat with phone pre-filled
// with message.
func ShareLink(phone, countryCode, message string) (string, error) {
	digits, err := NormalizePhone(phone, countryCode)
	if err != nil {
		return "", err
	}
	return shareBase + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20"), nil
}
