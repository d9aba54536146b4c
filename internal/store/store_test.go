package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

func newTestStore() *Store {
	seq := 0
	return New(
		WithIDFunc(func(prefix string) string {
			seq++
			return fmt.Sprintf("%s_%03d", prefix, seq)
		}),
		WithClock(func() time.Time {
			return time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
		}),
	)
}

// orgChain creates institution > faculty > department > program and returns
// their ids.
func orgChain(t *testing.T, s *Store) (instID, facID, deptID, progID string) {
	t.Helper()
	ctx := context.Background()
	inst, err := s.CreateInstitution(ctx, models.Institution{Name: "Northgate University"})
	require.NoError(t, err)
	fac, err := s.CreateFaculty(ctx, models.Faculty{InstitutionID: inst.ID, Name: "Science"})
	require.NoError(t, err)
	dept, err := s.CreateDepartment(ctx, models.Department{FacultyID: fac.ID, Name: "Computer Science"})
	require.NoError(t, err)
	prog, err := s.CreateProgram(ctx, models.Program{DepartmentID: dept.ID, Title: "BSc CS", ProgramLevel: models.ProgramLevelUndergraduate})
	require.NoError(t, err)
	return inst.ID, fac.ID, dept.ID, prog.ID
}

func makeSection(t *testing.T, s *Store, capacity int) (sectionID, courseID, termID string) {
	t.Helper()
	ctx := context.Background()
	course, err := s.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro to Programming", CreditHours: 3})
	require.NoError(t, err)
	term, err := s.CreateTerm(ctx, models.AcademicTerm{TermType: models.TermTypeFall, Year: 2025})
	require.NoError(t, err)
	sec, err := s.CreateSection(ctx, models.CourseSection{CourseID: course.ID, TermID: term.ID, SectionNumber: "A", Capacity: capacity})
	require.NoError(t, err)
	return sec.ID, course.ID, term.ID
}

func makeStudent(t *testing.T, s *Store, deptID, number string) string {
	t.Helper()
	stu, err := s.CreateStudent(context.Background(), models.Student{
		StudentNumber: number,
		FirstName:     "Test",
		LastName:      number,
		Email:         number + "@student.test",
		DepartmentID:  deptID,
	})
	require.NoError(t, err)
	return stu.ID
}

func TestInstitutionRoundTrip(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateInstitution(ctx, models.Institution{Name: "Northgate University", Description: "Public research university"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetInstitution(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.GetInstitution(ctx, "inst_missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestPartialUpdateLeavesUnsetFields(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateInstitution(ctx, models.Institution{Name: "Northgate", Description: "original"})
	require.NoError(t, err)

	name := "Northgate University"
	updated, err := s.UpdateInstitution(ctx, created.ID, models.InstitutionPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Northgate University", updated.Name)
	assert.Equal(t, "original", updated.Description)
}

func TestCascadeInstitutionDeleteRemovesWholeSubtree(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	instID, facID, deptID, progID := orgChain(t, s)

	course, err := s.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro", CreditHours: 3})
	require.NoError(t, err)
	_, err = s.CreateProgramCourse(ctx, models.ProgramCourse{ProgramID: progID, CourseID: course.ID})
	require.NoError(t, err)

	stuID := makeStudent(t, s, deptID, "NG-001")
	_, err = s.CreateEnrollment(ctx, models.ProgramEnrollment{StudentID: stuID, ProgramID: progID})
	require.NoError(t, err)

	ack, err := s.DeleteInstitution(ctx, instID)
	require.NoError(t, err)
	assert.Equal(t, instID, ack.ID)

	_, err = s.GetFaculty(ctx, facID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	_, err = s.GetDepartment(ctx, deptID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	_, err = s.GetProgram(ctx, progID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Empty(t, s.ListProgramCourses(ctx, ""))
	assert.Empty(t, s.ListEnrollments(ctx, "", ""))

	// Soft references survive: the student row stays even though its
	// department is gone.
	_, err = s.GetStudent(ctx, stuID)
	assert.NoError(t, err)
	_, err = s.GetCourse(ctx, course.ID)
	assert.NoError(t, err)
}

func TestCascadeTermDeleteRemovesSectionsAndTheirChildren(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, termID := makeSection(t, s, 30)
	stuID := makeStudent(t, s, deptID, "NG-001")

	_, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: stuID, SectionID: secID})
	require.NoError(t, err)
	_, err = s.CreateMaterial(ctx, models.CourseMaterial{SectionID: secID, Title: "Syllabus", MaterialType: models.MaterialTypeSyllabus})
	require.NoError(t, err)
	_, err = s.BulkUpsertAttendance(ctx, secID, "2025-09-01", []models.AttendanceEntry{{StudentID: stuID, Status: models.AttendanceStatusPresent}})
	require.NoError(t, err)

	_, err = s.DeleteTerm(ctx, termID)
	require.NoError(t, err)

	_, err = s.GetSection(ctx, secID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Empty(t, s.ListRegistrations(ctx, "", ""))
	assert.Empty(t, s.ListMaterials(ctx, ""))
	assert.Empty(t, s.ListAttendance(ctx, "", ""))
}

func TestCascadeStudentDeleteReleasesSeats(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, progID := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 30)
	stuID := makeStudent(t, s, deptID, "NG-001")

	_, err := s.CreateEnrollment(ctx, models.ProgramEnrollment{StudentID: stuID, ProgramID: progID})
	require.NoError(t, err)
	_, err = s.CreateRegistration(ctx, models.CourseRegistration{StudentID: stuID, SectionID: secID})
	require.NoError(t, err)

	sec, err := s.GetSection(ctx, secID)
	require.NoError(t, err)
	require.Equal(t, 1, sec.EnrolledCount)

	_, err = s.DeleteStudent(ctx, stuID)
	require.NoError(t, err)

	sec, err = s.GetSection(ctx, secID)
	require.NoError(t, err)
	assert.Equal(t, 0, sec.EnrolledCount)
	assert.Empty(t, s.ListEnrollments(ctx, "", ""))
	assert.Empty(t, s.ListRegistrations(ctx, "", ""))
}

func TestCreateFacultyRequiresInstitution(t *testing.T) {
	s := newTestStore()
	_, err := s.CreateFaculty(context.Background(), models.Faculty{InstitutionID: "inst_missing", Name: "Science"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
