package models

import "time"

// DepartmentEmployee is a staff position within a department. UserID
// optionally links to a login account.
type DepartmentEmployee struct {
	ID           string    `json:"id"`
	DepartmentID string    `json:"department_id"`
	UserID       string    `json:"user_id,omitempty"`
	FullName     string    `json:"full_name"`
	Position     string    `json:"position"`
	HireDate     time.Time `json:"hire_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DepartmentEmployeeDetail adds the owning department's name.
type DepartmentEmployeeDetail struct {
	DepartmentEmployee
	DepartmentName string `json:"department_name"`
}
