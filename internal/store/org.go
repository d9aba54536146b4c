package store

import (
	"context"
	"fmt"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

// ListInstitutions returns all institutions in insertion order.
func (s *Store) ListInstitutions(_ context.Context) []models.Institution {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Institution, len(s.institutions))
	copy(out, s.institutions)
	return out
}

// GetInstitution returns a single institution by id.
func (s *Store) GetInstitution(_ context.Context, id string) (*models.Institution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst := s.findInstitution(id)
	if inst == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "institution not found")
	}
	out := *inst
	return &out, nil
}

// CreateInstitution appends a new institution.
func (s *Store) CreateInstitution(_ context.Context, in models.Institution) (*models.Institution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	in.ID = s.newID("inst")
	in.CreatedAt = now
	in.UpdatedAt = now
	s.institutions = append(s.institutions, in)
	out := in
	return &out, nil
}

// UpdateInstitution shallow-merges the patch onto the stored row.
func (s *Store) UpdateInstitution(_ context.Context, id string, patch models.InstitutionPatch) (*models.Institution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst := s.findInstitution(id)
	if inst == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "institution not found")
	}
	applyString(&inst.Name, patch.Name)
	applyString(&inst.Description, patch.Description)
	inst.UpdatedAt = s.now()
	out := *inst
	return &out, nil
}

// DeleteInstitution removes the institution and cascades through faculties,
// departments, programs and program-course rows.
func (s *Store) DeleteInstitution(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst := s.findInstitution(id)
	if inst == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "institution not found")
	}
	label := inst.Name
	s.institutions, _ = removeWhere(s.institutions,
		func(i models.Institution) bool { return i.ID == id },
		func(i models.Institution) string { return i.ID })
	s.cascade(kindInstitution, id)
	return &models.DeleteAck{ID: id, Label: label}, nil
}

// ListFaculties returns faculties, optionally scoped to one institution,
// enriched with the institution name.
func (s *Store) ListFaculties(_ context.Context, institutionID string) []models.FacultyDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FacultyDetail, 0)
	for _, f := range s.faculties {
		if institutionID != "" && f.InstitutionID != institutionID {
			continue
		}
		out = append(out, s.enrichFaculty(f))
	}
	return out
}

// GetFaculty returns a single faculty by id.
func (s *Store) GetFaculty(_ context.Context, id string) (*models.FacultyDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.findFaculty(id)
	if f == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	detail := s.enrichFaculty(*f)
	return &detail, nil
}

// CreateFaculty appends a faculty after checking its institution exists.
func (s *Store) CreateFaculty(_ context.Context, in models.Faculty) (*models.FacultyDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findInstitution(in.InstitutionID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "institution not found")
	}
	now := s.now()
	in.ID = s.newID("fac")
	in.CreatedAt = now
	in.UpdatedAt = now
	s.faculties = append(s.faculties, in)
	detail := s.enrichFaculty(in)
	return &detail, nil
}

// UpdateFaculty shallow-merges the patch; a re-parented faculty must point at
// an existing institution.
func (s *Store) UpdateFaculty(_ context.Context, id string, patch models.FacultyPatch) (*models.FacultyDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.findFaculty(id)
	if f == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	if patch.InstitutionID != nil && s.findInstitution(*patch.InstitutionID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "institution not found")
	}
	applyString(&f.InstitutionID, patch.InstitutionID)
	applyString(&f.Name, patch.Name)
	applyString(&f.Description, patch.Description)
	f.UpdatedAt = s.now()
	detail := s.enrichFaculty(*f)
	return &detail, nil
}

// DeleteFaculty removes the faculty and cascades to departments, programs
// and program-course rows.
func (s *Store) DeleteFaculty(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.findFaculty(id)
	if f == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	label := f.Name
	s.faculties, _ = removeWhere(s.faculties,
		func(row models.Faculty) bool { return row.ID == id },
		func(row models.Faculty) string { return row.ID })
	s.cascade(kindFaculty, id)
	return &models.DeleteAck{ID: id, Label: label}, nil
}

// ListDepartments returns departments, optionally scoped to one faculty,
// enriched with parent names.
func (s *Store) ListDepartments(_ context.Context, facultyID string) []models.DepartmentDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DepartmentDetail, 0)
	for _, d := range s.departments {
		if facultyID != "" && d.FacultyID != facultyID {
			continue
		}
		out = append(out, s.enrichDepartment(d))
	}
	return out
}

// GetDepartment returns a single department by id.
func (s *Store) GetDepartment(_ context.Context, id string) (*models.DepartmentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.findDepartment(id)
	if d == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}
	detail := s.enrichDepartment(*d)
	return &detail, nil
}

// CreateDepartment appends a department after checking its faculty exists.
// InstitutionID is copied from the owning faculty.
func (s *Store) CreateDepartment(_ context.Context, in models.Department) (*models.DepartmentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	faculty := s.findFaculty(in.FacultyID)
	if faculty == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	now := s.now()
	in.ID = s.newID("dept")
	in.InstitutionID = faculty.InstitutionID
	in.CreatedAt = now
	in.UpdatedAt = now
	s.departments = append(s.departments, in)
	detail := s.enrichDepartment(in)
	return &detail, nil
}

// UpdateDepartment shallow-merges the patch; re-parenting refreshes the
// denormalized institution reference.
func (s *Store) UpdateDepartment(_ context.Context, id string, patch models.DepartmentPatch) (*models.DepartmentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.findDepartment(id)
	if d == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}
	if patch.FacultyID != nil {
		faculty := s.findFaculty(*patch.FacultyID)
		if faculty == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		d.FacultyID = faculty.ID
		d.InstitutionID = faculty.InstitutionID
	}
	applyString(&d.Name, patch.Name)
	applyString(&d.Description, patch.Description)
	d.UpdatedAt = s.now()
	detail := s.enrichDepartment(*d)
	return &detail, nil
}

// DeleteDepartment removes the department and cascades to programs and
// program-course rows.
func (s *Store) DeleteDepartment(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.findDepartment(id)
	if d == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}
	label := d.Name
	s.departments, _ = removeWhere(s.departments,
		func(row models.Department) bool { return row.ID == id },
		func(row models.Department) string { return row.ID })
	s.cascade(kindDepartment, id)
	return &models.DeleteAck{ID: id, Label: label}, nil
}

// ListPrograms returns programs, optionally scoped to one department.
func (s *Store) ListPrograms(_ context.Context, departmentID string) []models.ProgramDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ProgramDetail, 0)
	for _, p := range s.programs {
		if departmentID != "" && p.DepartmentID != departmentID {
			continue
		}
		out = append(out, s.enrichProgram(p))
	}
	return out
}

// GetProgram returns a single program by id.
func (s *Store) GetProgram(_ context.Context, id string) (*models.ProgramDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProgram(id)
	if p == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
	}
	detail := s.enrichProgram(*p)
	return &detail, nil
}

// CreateProgram appends a program after checking its department exists.
func (s *Store) CreateProgram(_ context.Context, in models.Program) (*models.ProgramDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findDepartment(in.DepartmentID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}
	now := s.now()
	in.ID = s.newID("prog")
	in.CreatedAt = now
	in.UpdatedAt = now
	s.programs = append(s.programs, in)
	detail := s.enrichProgram(in)
	return &detail, nil
}

// UpdateProgram shallow-merges the patch onto the stored row.
func (s *Store) UpdateProgram(_ context.Context, id string, patch models.ProgramPatch) (*models.ProgramDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProgram(id)
	if p == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
	}
	if patch.DepartmentID != nil {
		if s.findDepartment(*patch.DepartmentID) == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		p.DepartmentID = *patch.DepartmentID
	}
	applyString(&p.Title, patch.Title)
	applyString(&p.Description, patch.Description)
	if patch.ProgramLevel != nil {
		p.ProgramLevel = *patch.ProgramLevel
	}
	p.UpdatedAt = s.now()
	detail := s.enrichProgram(*p)
	return &detail, nil
}

// DeleteProgram removes the program and cascades to its program-course rows
// and program enrollments.
func (s *Store) DeleteProgram(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProgram(id)
	if p == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
	}
	label := p.Title
	s.programs, _ = removeWhere(s.programs,
		func(row models.Program) bool { return row.ID == id },
		func(row models.Program) string { return row.ID })
	s.cascade(kindProgram, id)
	return &models.DeleteAck{ID: id, Label: label}, nil
}

// ListProgramCourses returns the course assignments of one program enriched
// with course attributes.
func (s *Store) ListProgramCourses(_ context.Context, programID string) []models.ProgramCourseDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ProgramCourseDetail, 0)
	for _, pc := range s.programCourses {
		if programID != "" && pc.ProgramID != programID {
			continue
		}
		out = append(out, s.enrichProgramCourse(pc))
	}
	return out
}

// CreateProgramCourse assigns a course to a program. Both references must
// resolve and the (program, course) pair must be new.
func (s *Store) CreateProgramCourse(_ context.Context, in models.ProgramCourse) (*models.ProgramCourseDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findProgram(in.ProgramID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
	}
	if s.findCourse(in.CourseID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	for _, pc := range s.programCourses {
		if pc.ProgramID == in.ProgramID && pc.CourseID == in.CourseID {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course is already assigned to this program")
		}
	}
	now := s.now()
	in.ID = s.newID("pc")
	in.CreatedAt = now
	in.UpdatedAt = now
	s.programCourses = append(s.programCourses, in)
	detail := s.enrichProgramCourse(in)
	return &detail, nil
}

// UpdateProgramCourse always fails: assignments are immutable, remove and
// re-create instead.
func (s *Store) UpdateProgramCourse(_ context.Context, _ string) error {
	return appErrors.Clone(appErrors.ErrUnsupported, "program-course assignments cannot be updated; delete and re-create")
}

// DeleteProgramCourse removes a single assignment row.
func (s *Store) DeleteProgramCourse(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var target *models.ProgramCourse
	for i := range s.programCourses {
		if s.programCourses[i].ID == id {
			target = &s.programCourses[i]
			break
		}
	}
	if target == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "program-course assignment not found")
	}
	label := fmt.Sprintf("%s/%s", target.ProgramID, target.CourseID)
	if course := s.findCourse(target.CourseID); course != nil {
		label = course.CourseCode
	}
	s.programCourses, _ = removeWhere(s.programCourses,
		func(row models.ProgramCourse) bool { return row.ID == id },
		func(row models.ProgramCourse) string { return row.ID })
	return &models.DeleteAck{ID: id, Label: label}, nil
}

func (s *Store) findInstitution(id string) *models.Institution {
	for i := range s.institutions {
		if s.institutions[i].ID == id {
			return &s.institutions[i]
		}
	}
	return nil
}

func (s *Store) findFaculty(id string) *models.Faculty {
	for i := range s.faculties {
		if s.faculties[i].ID == id {
			return &s.faculties[i]
		}
	}
	return nil
}

func (s *Store) findDepartment(id string) *models.Department {
	for i := range s.departments {
		if s.departments[i].ID == id {
			return &s.departments[i]
		}
	}
	return nil
}

func (s *Store) findProgram(id string) *models.Program {
	for i := range s.programs {
		if s.programs[i].ID == id {
			return &s.programs[i]
		}
	}
	return nil
}

func (s *Store) enrichFaculty(f models.Faculty) models.FacultyDetail {
	detail := models.FacultyDetail{Faculty: f}
	if inst := s.findInstitution(f.InstitutionID); inst != nil {
		detail.InstitutionName = inst.Name
	}
	return detail
}

func (s *Store) enrichDepartment(d models.Department) models.DepartmentDetail {
	detail := models.DepartmentDetail{Department: d}
	if f := s.findFaculty(d.FacultyID); f != nil {
		detail.FacultyName = f.Name
	}
	if inst := s.findInstitution(d.InstitutionID); inst != nil {
		detail.InstitutionName = inst.Name
	}
	return detail
}

func (s *Store) enrichProgram(p models.Program) models.ProgramDetail {
	detail := models.ProgramDetail{Program: p}
	if d := s.findDepartment(p.DepartmentID); d != nil {
		detail.DepartmentName = d.Name
		if inst := s.findInstitution(d.InstitutionID); inst != nil {
			detail.InstitutionName = inst.Name
		}
	}
	return detail
}

func (s *Store) enrichProgramCourse(pc models.ProgramCourse) models.ProgramCourseDetail {
	detail := models.ProgramCourseDetail{ProgramCourse: pc}
	if c := s.findCourse(pc.CourseID); c != nil {
		detail.CourseCode = c.CourseCode
		detail.CourseName = c.Name
		detail.CreditHours = c.CreditHours
	}
	if p := s.findProgram(pc.ProgramID); p != nil {
		detail.ProgramTitle = p.Title
	}
	return detail
}
