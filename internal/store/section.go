package store

import (
	"context"
	"fmt"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

// ListSections returns sections enriched with course and term names,
// optionally filtered by term, course and status.
func (s *Store) ListSections(_ context.Context, filter models.SectionFilter) []models.CourseSectionDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CourseSectionDetail, 0)
	for _, sec := range s.sections {
		if filter.TermID != "" && sec.TermID != filter.TermID {
			continue
		}
		if filter.CourseID != "" && sec.CourseID != filter.CourseID {
			continue
		}
		if filter.Status != "" && sec.Status != filter.Status {
			continue
		}
		out = append(out, s.enrichSection(sec))
	}
	return out
}

// GetSection returns a single section by id.
func (s *Store) GetSection(_ context.Context, id string) (*models.CourseSectionDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.findSection(id)
	if sec == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	detail := s.enrichSection(*sec)
	return &detail, nil
}

// CreateSection appends a section after checking course and term exist.
// EnrolledCount is derived and always starts at zero; an empty status
// defaults to open.
func (s *Store) CreateSection(_ context.Context, in models.CourseSection) (*models.CourseSectionDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findCourse(in.CourseID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if s.findTerm(in.TermID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}
	now := s.now()
	in.ID = s.newID("sec")
	in.EnrolledCount = 0
	if in.Status == "" {
		in.Status = models.SectionStatusOpen
	}
	in.CreatedAt = now
	in.UpdatedAt = now
	s.sections = append(s.sections, in)
	detail := s.enrichSection(in)
	return &detail, nil
}

// UpdateSection shallow-merges the patch. EnrolledCount is not patchable;
// it only moves with registrations.
func (s *Store) UpdateSection(_ context.Context, id string, patch models.SectionPatch) (*models.CourseSectionDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.findSection(id)
	if sec == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	applyString(&sec.SectionNumber, patch.SectionNumber)
	applyInt(&sec.Capacity, patch.Capacity)
	applyString(&sec.Schedule, patch.Schedule)
	applyString(&sec.Room, patch.Room)
	if patch.Status != nil {
		sec.Status = *patch.Status
	}
	sec.UpdatedAt = s.now()
	detail := s.enrichSection(*sec)
	return &detail, nil
}

// DeleteSection removes the section and cascades to its instructors,
// registrations, materials and attendance records.
func (s *Store) DeleteSection(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := s.findSection(id)
	if sec == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	label := sec.SectionNumber
	if course := s.findCourse(sec.CourseID); course != nil {
		label = fmt.Sprintf("%s %s", course.CourseCode, sec.SectionNumber)
	}
	s.sections, _ = removeWhere(s.sections,
		func(row models.CourseSection) bool { return row.ID == id },
		func(row models.CourseSection) string { return row.ID })
	s.cascade(kindSection, id)
	return &models.DeleteAck{ID: id, Label: label}, nil
}

// ListInstructors returns the instructor assignments of a section enriched
// with the instructor's identity.
func (s *Store) ListInstructors(_ context.Context, sectionID string) []models.CourseInstructorDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CourseInstructorDetail, 0)
	for _, ins := range s.instructors {
		if sectionID != "" && ins.SectionID != sectionID {
			continue
		}
		out = append(out, s.enrichInstructor(ins))
	}
	return out
}

// CreateInstructor assigns a user to teach a section. The section and user
// must exist, the (section, user) pair must be new, and a section holds at
// most one primary instructor.
func (s *Store) CreateInstructor(_ context.Context, in models.CourseInstructor) (*models.CourseInstructorDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findSection(in.SectionID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	if s.findUser(in.UserID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	for _, ins := range s.instructors {
		if ins.SectionID == in.SectionID && ins.UserID == in.UserID {
			return nil, appErrors.Clone(appErrors.ErrConflict, "user is already assigned to this section")
		}
	}
	if in.Role == models.InstructorRolePrimary && s.sectionHasPrimary(in.SectionID, "") {
		return nil, appErrors.Clone(appErrors.ErrConflict, "section already has a primary instructor")
	}
	now := s.now()
	in.ID = s.newID("ci")
	in.CreatedAt = now
	in.UpdatedAt = now
	s.instructors = append(s.instructors, in)
	detail := s.enrichInstructor(in)
	return &detail, nil
}

// UpdateInstructor changes an assignment's role, keeping the single-primary
// invariant.
func (s *Store) UpdateInstructor(_ context.Context, id string, patch models.InstructorPatch) (*models.CourseInstructorDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ins := s.findInstructor(id)
	if ins == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor assignment not found")
	}
	if patch.Role != nil {
		if *patch.Role == models.InstructorRolePrimary && s.sectionHasPrimary(ins.SectionID, id) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "section already has a primary instructor")
		}
		ins.Role = *patch.Role
	}
	ins.UpdatedAt = s.now()
	detail := s.enrichInstructor(*ins)
	return &detail, nil
}

// DeleteInstructor removes a single assignment row.
func (s *Store) DeleteInstructor(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ins := s.findInstructor(id)
	if ins == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor assignment not found")
	}
	label := ins.UserID
	if u := s.findUser(ins.UserID); u != nil {
		label = u.FullName
	}
	s.instructors, _ = removeWhere(s.instructors,
		func(row models.CourseInstructor) bool { return row.ID == id },
		func(row models.CourseInstructor) string { return row.ID })
	return &models.DeleteAck{ID: id, Label: label}, nil
}

func (s *Store) findSection(id string) *models.CourseSection {
	for i := range s.sections {
		if s.sections[i].ID == id {
			return &s.sections[i]
		}
	}
	return nil
}

func (s *Store) findInstructor(id string) *models.CourseInstructor {
	for i := range s.instructors {
		if s.instructors[i].ID == id {
			return &s.instructors[i]
		}
	}
	return nil
}

func (s *Store) sectionHasPrimary(sectionID, excludeID string) bool {
	for _, ins := range s.instructors {
		if ins.SectionID == sectionID && ins.ID != excludeID && ins.Role == models.InstructorRolePrimary {
			return true
		}
	}
	return false
}

func (s *Store) enrichSection(sec models.CourseSection) models.CourseSectionDetail {
	detail := models.CourseSectionDetail{CourseSection: sec}
	if c := s.findCourse(sec.CourseID); c != nil {
		detail.CourseCode = c.CourseCode
		detail.CourseName = c.Name
	}
	if t := s.findTerm(sec.TermID); t != nil {
		detail.TermName = t.Name
	}
	return detail
}

func (s *Store) enrichInstructor(ins models.CourseInstructor) models.CourseInstructorDetail {
	detail := models.CourseInstructorDetail{CourseInstructor: ins}
	if u := s.findUser(ins.UserID); u != nil {
		detail.InstructorName = u.FullName
		detail.InstructorEmail = u.Email
	}
	return detail
}
