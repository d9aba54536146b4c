package models

import "time"

// SectionStatus tracks whether a section accepts registrations.
type SectionStatus string

const (
	SectionStatusOpen      SectionStatus = "open"
	SectionStatusClosed    SectionStatus = "closed"
	SectionStatusCancelled SectionStatus = "cancelled"
)

// Valid returns true when the status is a supported value.
func (s SectionStatus) Valid() bool {
	switch s {
	case SectionStatusOpen, SectionStatusClosed, SectionStatusCancelled:
		return true
	default:
		return false
	}
}

// CourseSection is a scheduled offering of a course within a term.
// EnrolledCount is a derived counter: it always equals the number of
// non-dropped registrations for the section.
type CourseSection struct {
	ID            string        `json:"id"`
	CourseID      string        `json:"course_id"`
	TermID        string        `json:"term_id"`
	SectionNumber string        `json:"section_number"`
	Capacity      int           `json:"capacity"`
	EnrolledCount int           `json:"enrolled_count"`
	Schedule      string        `json:"schedule"`
	Room          string        `json:"room"`
	Status        SectionStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CourseSectionDetail adds course and term attributes for display.
type CourseSectionDetail struct {
	CourseSection
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	TermName   string `json:"term_name"`
}

// SectionFilter captures filtering criteria for listing sections.
type SectionFilter struct {
	TermID   string
	CourseID string
	Status   SectionStatus
	Page     int
	PageSize int
}

// InstructorRole enumerates teaching roles within a section.
type InstructorRole string

const (
	InstructorRolePrimary   InstructorRole = "primary"
	InstructorRoleAssistant InstructorRole = "assistant"
	InstructorRoleTA        InstructorRole = "ta"
)

// Valid returns true when the role is a supported value.
func (r InstructorRole) Valid() bool {
	switch r {
	case InstructorRolePrimary, InstructorRoleAssistant, InstructorRoleTA:
		return true
	default:
		return false
	}
}

// CourseInstructor assigns a user to teach a section. The
// (section_id, user_id) pair is unique and a section holds at most one
// primary instructor.
type CourseInstructor struct {
	ID        string         `json:"id"`
	SectionID string         `json:"section_id"`
	UserID    string         `json:"user_id"`
	Role      InstructorRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CourseInstructorDetail adds the instructor's identity for display.
type CourseInstructorDetail struct {
	CourseInstructor
	InstructorName  string `json:"instructor_name"`
	InstructorEmail string `json:"instructor_email"`
}
