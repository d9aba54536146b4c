package models

import "time"

// Institution is the root of the organisational hierarchy.
type Institution struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Faculty belongs to an institution.
type Faculty struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institution_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FacultyDetail adds the owning institution's name for display.
type FacultyDetail struct {
	Faculty
	InstitutionName string `json:"institution_name"`
}

// Department belongs to a faculty. InstitutionID is a denormalized copy of
// the faculty's institution reference, kept for read convenience.
type Department struct {
	ID            string    `json:"id"`
	FacultyID     string    `json:"faculty_id"`
	InstitutionID string    `json:"institution_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DepartmentDetail adds parent names for display.
type DepartmentDetail struct {
	Department
	FacultyName     string `json:"faculty_name"`
	InstitutionName string `json:"institution_name"`
}

// ProgramLevel enumerates degree levels offered by a program.
type ProgramLevel string

const (
	ProgramLevelUndergraduate ProgramLevel = "undergraduate"
	ProgramLevelGraduate      ProgramLevel = "graduate"
	ProgramLevelDoctoral      ProgramLevel = "doctoral"
	ProgramLevelDiploma       ProgramLevel = "diploma"
)

// Valid returns true when the level is a supported value.
func (l ProgramLevel) Valid() bool {
	switch l {
	case ProgramLevelUndergraduate, ProgramLevelGraduate, ProgramLevelDoctoral, ProgramLevelDiploma:
		return true
	default:
		return false
	}
}

// Program belongs to a department.
type Program struct {
	ID           string       `json:"id"`
	DepartmentID string       `json:"department_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ProgramLevel ProgramLevel `json:"program_level"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ProgramDetail adds department and institution names for display.
type ProgramDetail struct {
	Program
	DepartmentName  string `json:"department_name"`
	InstitutionName string `json:"institution_name"`
}

// ProgramCourse is the junction row assigning a course to a program.
// The (program_id, course_id) pair is unique.
type ProgramCourse struct {
	ID        string    `json:"id"`
	ProgramID string    `json:"program_id"`
	CourseID  string    `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgramCourseDetail adds the referenced course's attributes.
type ProgramCourseDetail struct {
	ProgramCourse
	CourseCode   string `json:"course_code"`
	CourseName   string `json:"course_name"`
	CreditHours  int    `json:"credit_hours"`
	ProgramTitle string `json:"program_title"`
}
