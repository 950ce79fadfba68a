package model

// AttendanceRecord is a student's attendance in one course.
type AttendanceRecord struct {
	StudentID  string `json:"studentId"`
	CourseCode string `json:"courseCode"`
	Attendance int    `json:"attendance"`
	Name       string `json:"name"`
}
