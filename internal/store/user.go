package store

import (
	"context"
	"strings"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

// ListUsers returns users enriched with their roles, optionally filtered.
func (s *Store) ListUsers(_ context.Context, filter models.UserFilter) []models.UserDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UserDetail, 0)
	needle := strings.ToLower(filter.Search)
	for _, u := range s.users {
		if filter.Active != nil && u.Active != *filter.Active {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Email), needle) &&
			!strings.Contains(strings.ToLower(u.FullName), needle) {
			continue
		}
		detail := s.enrichUser(u)
		if filter.Role != "" && !hasRole(detail.Roles, filter.Role) {
			continue
		}
		out = append(out, detail)
	}
	return out
}

// GetUser returns a single user by id with roles attached.
func (s *Store) GetUser(_ context.Context, id string) (*models.UserDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findUser(id)
	if u == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	detail := s.enrichUser(*u)
	return &detail, nil
}

// GetUserByEmail returns a user matched case-insensitively on email.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.UserDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			detail := s.enrichUser(u)
			return &detail, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

// CreateUser appends a user. Email is unique case-insensitively.
func (s *Store) CreateUser(_ context.Context, in models.User, roles []models.RoleType) (*models.UserDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(in.Email, "") {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	now := s.now()
	in.ID = s.newID("user")
	in.CreatedAt = now
	in.UpdatedAt = now
	s.users = append(s.users, in)
	for _, role := range roles {
		s.userRoles = append(s.userRoles, models.UserRoleAssignment{
			ID:        s.newID("role"),
			UserID:    in.ID,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	detail := s.enrichUser(in)
	return &detail, nil
}

// UpdateUser shallow-merges the patch; a changed email must stay unique.
func (s *Store) UpdateUser(_ context.Context, id string, patch models.UserPatch) (*models.UserDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findUser(id)
	if u == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	if patch.Email != nil && s.emailTaken(*patch.Email, id) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	applyString(&u.Email, patch.Email)
	applyString(&u.FullName, patch.FullName)
	if patch.Active != nil {
		u.Active = *patch.Active
	}
	u.UpdatedAt = s.now()
	detail := s.enrichUser(*u)
	return &detail, nil
}

// UpdateUserPassword replaces the stored password hash.
func (s *Store) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findUser(id)
	if u == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = s.now()
	return nil
}

// AssignRole grants a role to a user. Granting an already-held role fails
// with a conflict.
func (s *Store) AssignRole(_ context.Context, userID string, role models.RoleType) (*models.UserRoleAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findUser(userID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	for _, assignment := range s.userRoles {
		if assignment.UserID == userID && assignment.Role == role {
			return nil, appErrors.Clone(appErrors.ErrConflict, "user already holds this role")
		}
	}
	now := s.now()
	assignment := models.UserRoleAssignment{
		ID:        s.newID("role"),
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.userRoles = append(s.userRoles, assignment)
	out := assignment
	return &out, nil
}

// RevokeRole removes a role assignment by id.
func (s *Store) RevokeRole(_ context.Context, assignmentID string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var label string
	found := false
	for _, assignment := range s.userRoles {
		if assignment.ID == assignmentID {
			found = true
			label = string(assignment.Role)
			break
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "role assignment not found")
	}
	s.userRoles, _ = removeWhere(s.userRoles,
		func(row models.UserRoleAssignment) bool { return row.ID == assignmentID },
		func(row models.UserRoleAssignment) string { return row.ID })
	return &models.DeleteAck{ID: assignmentID, Label: label}, nil
}

// DeleteUser removes a user and its role assignments. Student, employee and
// instructor rows referencing the user keep their soft link.
func (s *Store) DeleteUser(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findUser(id)
	if u == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	label := u.Email
	s.users, _ = removeWhere(s.users,
		func(row models.User) bool { return row.ID == id },
		func(row models.User) string { return row.ID })
	s.userRoles, _ = removeWhere(s.userRoles,
		func(row models.UserRoleAssignment) bool { return row.UserID == id },
		func(row models.UserRoleAssignment) string { return row.ID })
	return &models.DeleteAck{ID: id, Label: label}, nil
}

func (s *Store) findUser(id string) *models.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Store) emailTaken(email, excludeID string) bool {
	for _, u := range s.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (s *Store) enrichUser(u models.User) models.UserDetail {
	detail := models.UserDetail{User: u, Roles: make([]models.RoleType, 0)}
	for _, assignment := range s.userRoles {
		if assignment.UserID == u.ID {
			detail.Roles = append(detail.Roles, assignment.Role)
		}
	}
	return detail
}

func hasRole(roles []models.RoleType, role models.RoleType) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
