package model

// Student is one row of the profile export.
type Student struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Gender                string `json:"gender"`
	Category              string `json:"category"`
	Contact               string `json:"contact"`
	Address               string `json:"address"`
	CounsellorName        string `json:"counsellorName"`
	CounsellorDesignation string `json:"counsellorDesignation"`
	CounsellorContact     string `json:"counsellorContact"`
}

// LookupQuery is the query string shared by every per-student endpoint.
type LookupQuery struct {
	StudentID string `form:"studentId" json:"studentId" binding:"required,notblank,max=64"`
}

// ShareQuery adds the recipient phone number to a lookup.
type ShareQuery struct {
	StudentID string `form:"studentId" json:"studentId" binding:"required,notblank,max=64"`
	Phone     string `form:"phone" json:"phone" binding:"required,max=20"`
}
