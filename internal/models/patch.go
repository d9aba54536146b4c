package models

import "time"

// Patch types carry partial updates: nil fields are left untouched and set
// fields are shallow-merged onto the stored row.

type InstitutionPatch struct {
	Name        *string
	Description *string
}

type FacultyPatch struct {
	InstitutionID *string
	Name          *string
	Description   *string
}

type DepartmentPatch struct {
	FacultyID   *string
	Name        *string
	Description *string
}

type ProgramPatch struct {
	DepartmentID *string
	Title        *string
	Description  *string
	ProgramLevel *ProgramLevel
}

type CoursePatch struct {
	CourseCode  *string
	Name        *string
	Description *string
	CreditHours *int
}

type StudentPatch struct {
	StudentNumber *string
	FirstName     *string
	LastName      *string
	Email         *string
	DepartmentID  *string
	UserID        *string
}

type ProgramEnrollmentPatch struct {
	EnrollmentDate *time.Time
	Status         *EnrollmentStatus
}

type TermPatch struct {
	Name      *string
	TermType  *TermType
	Year      *int
	StartDate *time.Time
	EndDate   *time.Time
	Status    *TermStatus
}

type SectionPatch struct {
	SectionNumber *string
	Capacity      *int
	Schedule      *string
	Room          *string
	Status        *SectionStatus
}

type InstructorPatch struct {
	Role *InstructorRole
}

type RegistrationPatch struct {
	Status *RegistrationStatus
}

type MaterialPatch struct {
	Title        *string
	Description  *string
	MaterialType *MaterialType
	Visibility   *MaterialVisibility
}

type EmployeePatch struct {
	DepartmentID *string
	UserID       *string
	FullName     *string
	Position     *string
	HireDate     *time.Time
}

type UserPatch struct {
	Email    *string
	FullName *string
	Active   *bool
}
