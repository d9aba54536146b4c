package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campushq/uni-admin-api/internal/models"
)

// Store is the in-memory relational store backing the administration API.
// It owns one ordered collection per entity type; rows enter and leave the
// collections only through Store methods, and a single mutex serializes all
// mutations so check-then-write sequences (capacity, uniqueness) are atomic.
type Store struct {
	mu    sync.Mutex
	newID func(prefix string) string
	now   func() time.Time

	users          []models.User
	userRoles      []models.UserRoleAssignment
	institutions   []models.Institution
	faculties      []models.Faculty
	departments    []models.Department
	programs       []models.Program
	courses        []models.Course
	programCourses []models.ProgramCourse
	students       []models.Student
	enrollments    []models.ProgramEnrollment
	terms          []models.AcademicTerm
	sections       []models.CourseSection
	instructors    []models.CourseInstructor
	registrations  []models.CourseRegistration
	materials      []models.CourseMaterial
	attendance     []models.AttendanceRecord
	employees      []models.DepartmentEmployee
}

// Option customises a Store at construction time.
type Option func(*Store)

// WithIDFunc overrides the id generator. The function must return ids unique
// across the process for a given prefix.
func WithIDFunc(fn func(prefix string) string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock overrides the timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// New returns an empty store. Ids are type-prefixed uuids and timestamps are
// UTC unless overridden.
func New(opts ...Option) *Store {
	s := &Store{
		newID: func(prefix string) string { return prefix + "_" + uuid.NewString() },
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// kind identifies an entity collection in the cascade graph.
type kind string

const (
	kindInstitution   kind = "institution"
	kindFaculty       kind = "faculty"
	kindDepartment    kind = "department"
	kindProgram       kind = "program"
	kindProgramCourse kind = "program_course"
	kindCourse        kind = "course"
	kindStudent       kind = "student"
	kindEnrollment    kind = "enrollment"
	kindTerm          kind = "term"
	kindSection       kind = "section"
	kindInstructor    kind = "instructor"
	kindRegistration  kind = "registration"
	kindMaterial      kind = "material"
	kindAttendance    kind = "attendance"
)

// childEdge removes the child rows referencing one parent row and reports
// their ids so the cascade can recurse into grandchildren.
type childEdge struct {
	kind   kind
	remove func(s *Store, parentID string) []string
}

// cascadeGraph is the static child-relation graph driving cascade deletes.
// Soft references (Student.DepartmentID, DepartmentEmployee.DepartmentID,
// CourseInstructor.UserID and the denormalized name copies) are deliberately
// absent: deleting their targets leaves the referencing rows in place.
var cascadeGraph = map[kind][]childEdge{
	kindInstitution: {
		{kindFaculty, func(s *Store, id string) []string {
			var removed []string
			s.faculties, removed = removeWhere(s.faculties,
				func(f models.Faculty) bool { return f.InstitutionID == id },
				func(f models.Faculty) string { return f.ID })
			return removed
		}},
	},
	kindFaculty: {
		{kindDepartment, func(s *Store, id string) []string {
			var removed []string
			s.departments, removed = removeWhere(s.departments,
				func(d models.Department) bool { return d.FacultyID == id },
				func(d models.Department) string { return d.ID })
			return removed
		}},
	},
	kindDepartment: {
		{kindProgram, func(s *Store, id string) []string {
			var removed []string
			s.programs, removed = removeWhere(s.programs,
				func(p models.Program) bool { return p.DepartmentID == id },
				func(p models.Program) string { return p.ID })
			return removed
		}},
	},
	kindProgram: {
		{kindProgramCourse, func(s *Store, id string) []string {
			var removed []string
			s.programCourses, removed = removeWhere(s.programCourses,
				func(pc models.ProgramCourse) bool { return pc.ProgramID == id },
				func(pc models.ProgramCourse) string { return pc.ID })
			return removed
		}},
		{kindEnrollment, func(s *Store, id string) []string {
			var removed []string
			s.enrollments, removed = removeWhere(s.enrollments,
				func(e models.ProgramEnrollment) bool { return e.ProgramID == id },
				func(e models.ProgramEnrollment) string { return e.ID })
			return removed
		}},
	},
	kindCourse: {
		{kindProgramCourse, func(s *Store, id string) []string {
			var removed []string
			s.programCourses, removed = removeWhere(s.programCourses,
				func(pc models.ProgramCourse) bool { return pc.CourseID == id },
				func(pc models.ProgramCourse) string { return pc.ID })
			return removed
		}},
	},
	kindStudent: {
		{kindEnrollment, func(s *Store, id string) []string {
			var removed []string
			s.enrollments, removed = removeWhere(s.enrollments,
				func(e models.ProgramEnrollment) bool { return e.StudentID == id },
				func(e models.ProgramEnrollment) string { return e.ID })
			return removed
		}},
		{kindRegistration, func(s *Store, id string) []string {
			var removed []string
			s.registrations, removed = s.removeRegistrationsAdjustingCounts(
				func(r models.CourseRegistration) bool { return r.StudentID == id })
			return removed
		}},
		{kindAttendance, func(s *Store, id string) []string {
			var removed []string
			s.attendance, removed = removeWhere(s.attendance,
				func(a models.AttendanceRecord) bool { return a.StudentID == id },
				func(a models.AttendanceRecord) string { return a.ID })
			return removed
		}},
	},
	kindTerm: {
		{kindSection, func(s *Store, id string) []string {
			var removed []string
			s.sections, removed = removeWhere(s.sections,
				func(sec models.CourseSection) bool { return sec.TermID == id },
				func(sec models.CourseSection) string { return sec.ID })
			return removed
		}},
	},
	kindSection: {
		{kindInstructor, func(s *Store, id string) []string {
			var removed []string
			s.instructors, removed = removeWhere(s.instructors,
				func(i models.CourseInstructor) bool { return i.SectionID == id },
				func(i models.CourseInstructor) string { return i.ID })
			return removed
		}},
		{kindRegistration, func(s *Store, id string) []string {
			var removed []string
			s.registrations, removed = removeWhere(s.registrations,
				func(r models.CourseRegistration) bool { return r.SectionID == id },
				func(r models.CourseRegistration) string { return r.ID })
			return removed
		}},
		{kindMaterial, func(s *Store, id string) []string {
			var removed []string
			s.materials, removed = removeWhere(s.materials,
				func(m models.CourseMaterial) bool { return m.SectionID == id },
				func(m models.CourseMaterial) string { return m.ID })
			return removed
		}},
		{kindAttendance, func(s *Store, id string) []string {
			var removed []string
			s.attendance, removed = removeWhere(s.attendance,
				func(a models.AttendanceRecord) bool { return a.SectionID == id },
				func(a models.AttendanceRecord) string { return a.ID })
			return removed
		}},
	},
}

// cascade removes all dependents of the given row, recursively. Callers hold
// the store lock and have already removed the row itself.
func (s *Store) cascade(k kind, id string) {
	for _, edge := range cascadeGraph[k] {
		for _, childID := range edge.remove(s, id) {
			s.cascade(edge.kind, childID)
		}
	}
}

// removeWhere filters rows matching the predicate out of the collection,
// preserving insertion order, and reports the removed ids.
func removeWhere[T any](rows []T, match func(T) bool, id func(T) string) ([]T, []string) {
	kept := make([]T, 0, len(rows))
	var removed []string
	for _, row := range rows {
		if match(row) {
			removed = append(removed, id(row))
			continue
		}
		kept = append(kept, row)
	}
	return kept, removed
}

// removeRegistrationsAdjustingCounts removes matching registrations and keeps
// the owning sections' enrolled_count consistent for rows that still counted.
func (s *Store) removeRegistrationsAdjustingCounts(match func(models.CourseRegistration) bool) ([]models.CourseRegistration, []string) {
	kept := make([]models.CourseRegistration, 0, len(s.registrations))
	var removed []string
	for _, reg := range s.registrations {
		if match(reg) {
			removed = append(removed, reg.ID)
			if reg.Status.Counted() {
				s.adjustEnrolledCount(reg.SectionID, -1)
			}
			continue
		}
		kept = append(kept, reg)
	}
	return kept, removed
}

func (s *Store) adjustEnrolledCount(sectionID string, delta int) {
	for i := range s.sections {
		if s.sections[i].ID == sectionID {
			s.sections[i].EnrolledCount += delta
			if s.sections[i].EnrolledCount < 0 {
				s.sections[i].EnrolledCount = 0
			}
			s.sections[i].UpdatedAt = s.now()
			return
		}
	}
}

// applyString overwrites dst when the patch field is set.
func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func applyTime(dst *time.Time, src *time.Time) {
	if src != nil {
		*dst = *src
	}
}
