package store

import (
	"context"
	"strings"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

// ListStudents returns students enriched with their department name,
// optionally filtered by department and a case-insensitive name search.
func (s *Store) ListStudents(_ context.Context, filter models.StudentFilter) []models.StudentDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.StudentDetail, 0)
	needle := strings.ToLower(filter.Search)
	for _, stu := range s.students {
		if filter.DepartmentID != "" && stu.DepartmentID != filter.DepartmentID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(stu.FullName()), needle) &&
			!strings.Contains(strings.ToLower(stu.StudentNumber), needle) {
			continue
		}
		out = append(out, s.enrichStudent(stu))
	}
	return out
}

// GetStudent returns a single student by id.
func (s *Store) GetStudent(_ context.Context, id string) (*models.StudentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stu := s.findStudent(id)
	if stu == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	detail := s.enrichStudent(*stu)
	return &detail, nil
}

// CreateStudent appends a student. The student number is unique and the
// department must exist; the optional user link must resolve when set.
func (s *Store) CreateStudent(_ context.Context, in models.Student) (*models.StudentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findDepartment(in.DepartmentID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}
	if in.UserID != "" && s.findUser(in.UserID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	if s.studentNumberTaken(in.StudentNumber, "") {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student number already exists")
	}
	now := s.now()
	in.ID = s.newID("stu")
	in.CreatedAt = now
	in.UpdatedAt = now
	s.students = append(s.students, in)
	detail := s.enrichStudent(in)
	return &detail, nil
}

// UpdateStudent shallow-merges the patch, re-validating uniqueness and
// references for changed fields.
func (s *Store) UpdateStudent(_ context.Context, id string, patch models.StudentPatch) (*models.StudentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stu := s.findStudent(id)
	if stu == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if patch.StudentNumber != nil && s.studentNumberTaken(*patch.StudentNumber, id) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student number already exists")
	}
	if patch.DepartmentID != nil && s.findDepartment(*patch.DepartmentID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}
	if patch.UserID != nil && *patch.UserID != "" && s.findUser(*patch.UserID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	applyString(&stu.StudentNumber, patch.StudentNumber)
	applyString(&stu.FirstName, patch.FirstName)
	applyString(&stu.LastName, patch.LastName)
	applyString(&stu.Email, patch.Email)
	applyString(&stu.DepartmentID, patch.DepartmentID)
	applyString(&stu.UserID, patch.UserID)
	stu.UpdatedAt = s.now()
	detail := s.enrichStudent(*stu)
	return &detail, nil
}

// DeleteStudent removes the student and cascades to program enrollments,
// registrations (releasing seats) and attendance records.
func (s *Store) DeleteStudent(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stu := s.findStudent(id)
	if stu == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	label := stu.FullName()
	s.students, _ = removeWhere(s.students,
		func(row models.Student) bool { return row.ID == id },
		func(row models.Student) string { return row.ID })
	s.cascade(kindStudent, id)
	return &models.DeleteAck{ID: id, Label: label}, nil
}

// ListEnrollments returns program enrollments enriched with student and
// program attributes, optionally filtered by student and/or program.
func (s *Store) ListEnrollments(_ context.Context, studentID, programID string) []models.ProgramEnrollmentDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ProgramEnrollmentDetail, 0)
	for _, e := range s.enrollments {
		if studentID != "" && e.StudentID != studentID {
			continue
		}
		if programID != "" && e.ProgramID != programID {
			continue
		}
		out = append(out, s.enrichEnrollment(e))
	}
	return out
}

// CreateEnrollment places a student into a program. Both references must
// resolve and the (student, program) pair must be new.
func (s *Store) CreateEnrollment(_ context.Context, in models.ProgramEnrollment) (*models.ProgramEnrollmentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findStudent(in.StudentID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if s.findProgram(in.ProgramID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
	}
	for _, e := range s.enrollments {
		if e.StudentID == in.StudentID && e.ProgramID == in.ProgramID {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student is already enrolled in this program")
		}
	}
	now := s.now()
	in.ID = s.newID("enr")
	if in.Status == "" {
		in.Status = models.EnrollmentStatusEnrolled
	}
	if in.EnrollmentDate.IsZero() {
		in.EnrollmentDate = now
	}
	in.CreatedAt = now
	in.UpdatedAt = now
	s.enrollments = append(s.enrollments, in)
	detail := s.enrichEnrollment(in)
	return &detail, nil
}

// UpdateEnrollment shallow-merges the patch onto the stored row.
func (s *Store) UpdateEnrollment(_ context.Context, id string, patch models.ProgramEnrollmentPatch) (*models.ProgramEnrollmentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var target *models.ProgramEnrollment
	for i := range s.enrollments {
		if s.enrollments[i].ID == id {
			target = &s.enrollments[i]
			break
		}
	}
	if target == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	applyTime(&target.EnrollmentDate, patch.EnrollmentDate)
	if patch.Status != nil {
		target.Status = *patch.Status
	}
	target.UpdatedAt = s.now()
	detail := s.enrichEnrollment(*target)
	return &detail, nil
}

// DeleteEnrollment removes a single enrollment row.
func (s *Store) DeleteEnrollment(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var label string
	found := false
	for _, e := range s.enrollments {
		if e.ID == id {
			found = true
			label = e.StudentID
			if stu := s.findStudent(e.StudentID); stu != nil {
				label = stu.FullName()
			}
			break
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	s.enrollments, _ = removeWhere(s.enrollments,
		func(row models.ProgramEnrollment) bool { return row.ID == id },
		func(row models.ProgramEnrollment) string { return row.ID })
	return &models.DeleteAck{ID: id, Label: label}, nil
}

func (s *Store) findStudent(id string) *models.Student {
	for i := range s.students {
		if s.students[i].ID == id {
			return &s.students[i]
		}
	}
	return nil
}

func (s *Store) studentNumberTaken(number, excludeID string) bool {
	for _, stu := range s.students {
		if stu.ID != excludeID && strings.EqualFold(stu.StudentNumber, number) {
			return true
		}
	}
	return false
}

func (s *Store) enrichStudent(stu models.Student) models.StudentDetail {
	detail := models.StudentDetail{Student: stu}
	if d := s.findDepartment(stu.DepartmentID); d != nil {
		detail.DepartmentName = d.Name
	}
	return detail
}

func (s *Store) enrichEnrollment(e models.ProgramEnrollment) models.ProgramEnrollmentDetail {
	detail := models.ProgramEnrollmentDetail{ProgramEnrollment: e}
	if stu := s.findStudent(e.StudentID); stu != nil {
		detail.StudentName = stu.FullName()
	}
	if p := s.findProgram(e.ProgramID); p != nil {
		detail.ProgramTitle = p.Title
	}
	return detail
}
