package store

import (
	"context"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

// ListRegistrations returns registrations enriched with student and section
// attributes, optionally filtered by section and/or student.
func (s *Store) ListRegistrations(_ context.Context, sectionID, studentID string) []models.CourseRegistrationDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CourseRegistrationDetail, 0)
	for _, reg := range s.registrations {
		if sectionID != "" && reg.SectionID != sectionID {
			continue
		}
		if studentID != "" && reg.StudentID != studentID {
			continue
		}
		out = append(out, s.enrichRegistration(reg))
	}
	return out
}

// GetRegistration returns a single registration by id.
func (s *Store) GetRegistration(_ context.Context, id string) (*models.CourseRegistrationDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg := s.findRegistration(id)
	if reg == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
	}
	detail := s.enrichRegistration(*reg)
	return &detail, nil
}

// CreateRegistration registers a student into a section. The student and
// section must exist, the student must not already hold a non-dropped
// registration for the section, and the section must have a free seat.
// The capacity check and the counter increment happen under one lock so
// concurrent registrations cannot oversubscribe a section.
func (s *Store) CreateRegistration(_ context.Context, in models.CourseRegistration) (*models.CourseRegistrationDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findStudent(in.StudentID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	sec := s.findSection(in.SectionID)
	if sec == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	for _, reg := range s.registrations {
		if reg.StudentID == in.StudentID && reg.SectionID == in.SectionID && reg.Status.Counted() {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student is already registered in this section")
		}
	}
	if sec.EnrolledCount >= sec.Capacity {
		return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, "section is full")
	}
	now := s.now()
	in.ID = s.newID("reg")
	if in.Status == "" {
		in.Status = models.RegistrationStatusRegistered
	}
	in.CreatedAt = now
	in.UpdatedAt = now
	s.registrations = append(s.registrations, in)
	if in.Status.Counted() {
		s.adjustEnrolledCount(sec.ID, 1)
	}
	detail := s.enrichRegistration(in)
	return &detail, nil
}

// UpdateRegistration changes a registration's status. Transitioning into
// dropped releases the seat exactly once; re-activating a dropped
// registration re-checks duplicates and capacity before taking a seat back.
func (s *Store) UpdateRegistration(_ context.Context, id string, patch models.RegistrationPatch) (*models.CourseRegistrationDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg := s.findRegistration(id)
	if reg == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
	}
	if patch.Status != nil && *patch.Status != reg.Status {
		next := *patch.Status
		wasCounted := reg.Status.Counted()
		willCount := next.Counted()
		if !wasCounted && willCount {
			for _, other := range s.registrations {
				if other.ID != id && other.StudentID == reg.StudentID && other.SectionID == reg.SectionID && other.Status.Counted() {
					return nil, appErrors.Clone(appErrors.ErrConflict, "student is already registered in this section")
				}
			}
			if sec := s.findSection(reg.SectionID); sec != nil && sec.EnrolledCount >= sec.Capacity {
				return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, "section is full")
			}
			s.adjustEnrolledCount(reg.SectionID, 1)
		}
		if wasCounted && !willCount {
			s.adjustEnrolledCount(reg.SectionID, -1)
		}
		reg.Status = next
	}
	reg.UpdatedAt = s.now()
	detail := s.enrichRegistration(*reg)
	return &detail, nil
}

// DeleteRegistration removes a registration, releasing its seat when the
// row still counted toward the section.
func (s *Store) DeleteRegistration(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg := s.findRegistration(id)
	if reg == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
	}
	label := reg.StudentID
	if stu := s.findStudent(reg.StudentID); stu != nil {
		label = stu.FullName()
	}
	if reg.Status.Counted() {
		s.adjustEnrolledCount(reg.SectionID, -1)
	}
	s.registrations, _ = removeWhere(s.registrations,
		func(row models.CourseRegistration) bool { return row.ID == id },
		func(row models.CourseRegistration) string { return row.ID })
	return &models.DeleteAck{ID: id, Label: label}, nil
}

func (s *Store) findRegistration(id string) *models.CourseRegistration {
	for i := range s.registrations {
		if s.registrations[i].ID == id {
			return &s.registrations[i]
		}
	}
	return nil
}

func (s *Store) enrichRegistration(reg models.CourseRegistration) models.CourseRegistrationDetail {
	detail := models.CourseRegistrationDetail{CourseRegistration: reg}
	if stu := s.findStudent(reg.StudentID); stu != nil {
		detail.StudentName = stu.FullName()
		detail.StudentNumber = stu.StudentNumber
	}
	if sec := s.findSection(reg.SectionID); sec != nil {
		detail.SectionNumber = sec.SectionNumber
		if c := s.findCourse(sec.CourseID); c != nil {
			detail.CourseCode = c.CourseCode
			detail.CourseName = c.Name
		}
	}
	return detail
}
