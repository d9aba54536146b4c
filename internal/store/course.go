package store

import (
	"context"
	"strings"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

// ListCourses returns courses in insertion order, optionally filtered by a
// case-insensitive search over code and name.
func (s *Store) ListCourses(_ context.Context, filter models.CourseFilter) []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Course, 0)
	needle := strings.ToLower(filter.Search)
	for _, c := range s.courses {
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.CourseCode), needle) &&
			!strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// GetCourse returns a single course by id.
func (s *Store) GetCourse(_ context.Context, id string) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findCourse(id)
	if c == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	out := *c
	return &out, nil
}

// CreateCourse appends a course. The course_code is unique across the
// collection.
func (s *Store) CreateCourse(_ context.Context, in models.Course) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.courseCodeTaken(in.CourseCode, "") {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course code already exists")
	}
	now := s.now()
	in.ID = s.newID("course")
	in.CreatedAt = now
	in.UpdatedAt = now
	s.courses = append(s.courses, in)
	out := in
	return &out, nil
}

// UpdateCourse shallow-merges the patch; a changed code must stay unique.
func (s *Store) UpdateCourse(_ context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findCourse(id)
	if c == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if patch.CourseCode != nil && s.courseCodeTaken(*patch.CourseCode, id) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course code already exists")
	}
	applyString(&c.CourseCode, patch.CourseCode)
	applyString(&c.Name, patch.Name)
	applyString(&c.Description, patch.Description)
	applyInt(&c.CreditHours, patch.CreditHours)
	c.UpdatedAt = s.now()
	out := *c
	return &out, nil
}

// DeleteCourse removes the course and cascades to its program-course
// assignments.
func (s *Store) DeleteCourse(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findCourse(id)
	if c == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	label := c.CourseCode
	s.courses, _ = removeWhere(s.courses,
		func(row models.Course) bool { return row.ID == id },
		func(row models.Course) string { return row.ID })
	s.cascade(kindCourse, id)
	return &models.DeleteAck{ID: id, Label: label}, nil
}

func (s *Store) findCourse(id string) *models.Course {
	for i := range s.courses {
		if s.courses[i].ID == id {
			return &s.courses[i]
		}
	}
	return nil
}

func (s *Store) courseCodeTaken(code, excludeID string) bool {
	for _, c := range s.courses {
		if c.ID != excludeID && strings.EqualFold(c.CourseCode, code) {
			return true
		}
	}
	return false
}
