package store

import (
	"context"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

// ListEmployees returns employees enriched with their department name,
// optionally scoped to one department.
func (s *Store) ListEmployees(_ context.Context, departmentID string) []models.DepartmentEmployeeDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DepartmentEmployeeDetail, 0)
	for _, e := range s.employees {
		if departmentID != "" && e.DepartmentID != departmentID {
			continue
		}
		out = append(out, s.enrichEmployee(e))
	}
	return out
}

// GetEmployee returns a single employee by id.
func (s *Store) GetEmployee(_ context.Context, id string) (*models.DepartmentEmployeeDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.findEmployee(id)
	if e == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
	}
	detail := s.enrichEmployee(*e)
	return &detail, nil
}

// CreateEmployee appends an employee after checking its department exists;
// the optional user link must resolve when set.
func (s *Store) CreateEmployee(_ context.Context, in models.DepartmentEmployee) (*models.DepartmentEmployeeDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findDepartment(in.DepartmentID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}
	if in.UserID != "" && s.findUser(in.UserID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	now := s.now()
	in.ID = s.newID("emp")
	in.CreatedAt = now
	in.UpdatedAt = now
	s.employees = append(s.employees, in)
	detail := s.enrichEmployee(in)
	return &detail, nil
}

// UpdateEmployee shallow-merges the patch, re-validating changed references.
func (s *Store) UpdateEmployee(_ context.Context, id string, patch models.EmployeePatch) (*models.DepartmentEmployeeDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.findEmployee(id)
	if e == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
	}
	if patch.DepartmentID != nil && s.findDepartment(*patch.DepartmentID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}
	if patch.UserID != nil && *patch.UserID != "" && s.findUser(*patch.UserID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	applyString(&e.DepartmentID, patch.DepartmentID)
	applyString(&e.UserID, patch.UserID)
	applyString(&e.FullName, patch.FullName)
	applyString(&e.Position, patch.Position)
	applyTime(&e.HireDate, patch.HireDate)
	e.UpdatedAt = s.now()
	detail := s.enrichEmployee(*e)
	return &detail, nil
}

// DeleteEmployee removes a single employee row.
func (s *Store) DeleteEmployee(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.findEmployee(id)
	if e == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found")
	}
	label := e.FullName
	s.employees, _ = removeWhere(s.employees,
		func(row models.DepartmentEmployee) bool { return row.ID == id },
		func(row models.DepartmentEmployee) string { return row.ID })
	return &models.DeleteAck{ID: id, Label: label}, nil
}

func (s *Store) findEmployee(id string) *models.DepartmentEmployee {
	for i := range s.employees {
		if s.employees[i].ID == id {
			return &s.employees[i]
		}
	}
	return nil
}

func (s *Store) enrichEmployee(e models.DepartmentEmployee) models.DepartmentEmployeeDetail {
	detail := models.DepartmentEmployeeDetail{DepartmentEmployee: e}
	if d := s.findDepartment(e.DepartmentID); d != nil {
		detail.DepartmentName = d.Name
	}
	return detail
}
