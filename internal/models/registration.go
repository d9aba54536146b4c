package models

import "time"

// RegistrationStatus tracks a student's standing within a section.
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusDropped    RegistrationStatus = "dropped"
	RegistrationStatusCompleted  RegistrationStatus = "completed"
)

// Valid returns true when the status is a supported value.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationStatusRegistered, RegistrationStatusDropped, RegistrationStatusCompleted:
		return true
	default:
		return false
	}
}

// Counted reports whether the status contributes to a section's
// enrolled_count.
func (s RegistrationStatus) Counted() bool {
	return s != RegistrationStatusDropped
}

// CourseRegistration places a student into a section. At most one
// non-dropped registration may exist per (student_id, section_id).
type CourseRegistration struct {
	ID        string             `json:"id"`
	StudentID string             `json:"student_id"`
	SectionID string             `json:"section_id"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CourseRegistrationDetail adds student and section attributes for display.
type CourseRegistrationDetail struct {
	CourseRegistration
	StudentName   string `json:"student_name"`
	StudentNumber string `json:"student_number"`
	SectionNumber string `json:"section_number"`
	CourseCode    string `json:"course_code"`
	CourseName    string `json:"course_name"`
}
