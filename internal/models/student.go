package models

import "time"

// Student is an enrolled person record. StudentNumber is the human-facing
// unique identifier; UserID optionally links to a login account.
type Student struct {
	ID            string    `json:"id"`
	StudentNumber string    `json:"student_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	DepartmentID  string    `json:"department_id"`
	UserID        string    `json:"user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FullName joins the name fields for display.
func (s Student) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// StudentDetail adds the owning department's name.
type StudentDetail struct {
	Student
	DepartmentName string `json:"department_name"`
}

// StudentFilter captures filtering criteria for listing students.
type StudentFilter struct {
	DepartmentID string
	Search       string
	Page         int
	PageSize     int
}

// EnrollmentStatus tracks a student's standing within a program.
type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusWithdrawn EnrollmentStatus = "withdrawn"
	EnrollmentStatusSuspended EnrollmentStatus = "suspended"
)

// Valid returns true when the status is a supported value.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentStatusEnrolled, EnrollmentStatusCompleted, EnrollmentStatusWithdrawn, EnrollmentStatusSuspended:
		return true
	default:
		return false
	}
}

// ProgramEnrollment places a student into a program. The
// (student_id, program_id) pair is unique.
type ProgramEnrollment struct {
	ID             string           `json:"id"`
	StudentID      string           `json:"student_id"`
	ProgramID      string           `json:"program_id"`
	EnrollmentDate time.Time        `json:"enrollment_date"`
	Status         EnrollmentStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProgramEnrollmentDetail adds student and program attributes for display.
type ProgramEnrollmentDetail struct {
	ProgramEnrollment
	StudentName  string `json:"student_name"`
	ProgramTitle string `json:"program_title"`
}
