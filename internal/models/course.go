package models

import "time"

// Course is independent of the organisational hierarchy; programs reference
// it through ProgramCourse junction rows. The course_code is unique.
type Course struct {
	ID          string    `json:"id"`
	CourseCode  string    `json:"course_code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreditHours int       `json:"credit_hours"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseFilter captures filtering criteria for listing courses.
type CourseFilter struct {
	Search   string
	Page     int
	PageSize int
}
