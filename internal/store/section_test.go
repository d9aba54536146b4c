package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

func TestCreateSectionStartsEmpty(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	course, err := s.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro", CreditHours: 3})
	require.NoError(t, err)
	term, err := s.CreateTerm(ctx, models.AcademicTerm{TermType: models.TermTypeFall, Year: 2025})
	require.NoError(t, err)

	sec, err := s.CreateSection(ctx, models.CourseSection{
		CourseID:      course.ID,
		TermID:        term.ID,
		SectionNumber: "A",
		Capacity:      40,
		EnrolledCount: 17,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, sec.EnrolledCount)
	assert.Equal(t, models.SectionStatusOpen, sec.Status)
	assert.Equal(t, "CS101", sec.CourseCode)
	assert.Equal(t, "fall 2025", sec.TermName)
}

func TestCreateSectionRequiresCourseAndTerm(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	course, err := s.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro", CreditHours: 3})
	require.NoError(t, err)

	_, err = s.CreateSection(ctx, models.CourseSection{CourseID: course.ID, TermID: "term_missing", SectionNumber: "A", Capacity: 10})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = s.CreateSection(ctx, models.CourseSection{CourseID: "course_missing", TermID: "term_missing", SectionNumber: "A", Capacity: 10})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestUpdateSectionCannotTouchEnrolledCount(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 10)
	stuID := makeStudent(t, s, deptID, "NG-001")

	_, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: stuID, SectionID: secID})
	require.NoError(t, err)

	room := "SCI-301"
	capacity := 5
	updated, err := s.UpdateSection(ctx, secID, models.SectionPatch{Room: &room, Capacity: &capacity})
	require.NoError(t, err)
	assert.Equal(t, "SCI-301", updated.Room)
	assert.Equal(t, 5, updated.Capacity)
	assert.Equal(t, 1, updated.EnrolledCount)
}

func TestSectionSinglePrimaryInstructor(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	secID, _, _ := makeSection(t, s, 10)
	prof, err := s.CreateUser(ctx, models.User{Email: "prof@test.edu", FullName: "Prof One", Active: true}, []models.RoleType{models.RoleFaculty})
	require.NoError(t, err)
	ta, err := s.CreateUser(ctx, models.User{Email: "ta@test.edu", FullName: "TA Two", Active: true}, []models.RoleType{models.RoleFaculty})
	require.NoError(t, err)

	_, err = s.CreateInstructor(ctx, models.CourseInstructor{SectionID: secID, UserID: prof.ID, Role: models.InstructorRolePrimary})
	require.NoError(t, err)

	// A second primary on the same section is rejected.
	_, err = s.CreateInstructor(ctx, models.CourseInstructor{SectionID: secID, UserID: ta.ID, Role: models.InstructorRolePrimary})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	assigned, err := s.CreateInstructor(ctx, models.CourseInstructor{SectionID: secID, UserID: ta.ID, Role: models.InstructorRoleTA})
	require.NoError(t, err)

	// Promoting the TA while a primary exists is rejected too.
	primary := models.InstructorRolePrimary
	_, err = s.UpdateInstructor(ctx, assigned.ID, models.InstructorPatch{Role: &primary})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestInstructorPairUnique(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	secID, _, _ := makeSection(t, s, 10)
	prof, err := s.CreateUser(ctx, models.User{Email: "prof@test.edu", FullName: "Prof One", Active: true}, []models.RoleType{models.RoleFaculty})
	require.NoError(t, err)

	_, err = s.CreateInstructor(ctx, models.CourseInstructor{SectionID: secID, UserID: prof.ID, Role: models.InstructorRolePrimary})
	require.NoError(t, err)
	_, err = s.CreateInstructor(ctx, models.CourseInstructor{SectionID: secID, UserID: prof.ID, Role: models.InstructorRoleAssistant})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestTermNameDerivedFromTypeAndYear(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	term, err := s.CreateTerm(ctx, models.AcademicTerm{TermType: models.TermTypeSpring, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, "spring 2026", term.Name)
	assert.Equal(t, models.TermStatusUpcoming, term.Status)

	named, err := s.CreateTerm(ctx, models.AcademicTerm{Name: "Spring Intake 2026", TermType: models.TermTypeSpring, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, "Spring Intake 2026", named.Name)
}
