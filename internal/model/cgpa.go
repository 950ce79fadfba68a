package model

// CGPA is a student's cumulative grade point average as exported.
// Value is NotAvailable when Found is false.
type CGPA struct {
	StudentID string `json:"studentId"`
	Value     string `json:"cgpa"`
	Found     bool   `json:"-"`
}
