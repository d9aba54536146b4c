package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

func TestProgramCoursePairUnique(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, _, progID := orgChain(t, s)
	course, err := s.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro", CreditHours: 3})
	require.NoError(t, err)

	_, err = s.CreateProgramCourse(ctx, models.ProgramCourse{ProgramID: progID, CourseID: course.ID})
	require.NoError(t, err)

	_, err = s.CreateProgramCourse(ctx, models.ProgramCourse{ProgramID: progID, CourseID: course.ID})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestProgramCourseUpdateUnsupported(t *testing.T) {
	s := newTestStore()
	err := s.UpdateProgramCourse(context.Background(), "pc_001")
	assert.ErrorIs(t, err, appErrors.ErrUnsupported)
}

func TestProgramCourseRequiresBothReferences(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, _, progID := orgChain(t, s)

	_, err := s.CreateProgramCourse(ctx, models.ProgramCourse{ProgramID: progID, CourseID: "course_missing"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	course, err := s.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro", CreditHours: 3})
	require.NoError(t, err)
	_, err = s.CreateProgramCourse(ctx, models.ProgramCourse{ProgramID: "prog_missing", CourseID: course.ID})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCourseCodeUniqueCaseInsensitive(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro", CreditHours: 3})
	require.NoError(t, err)

	_, err = s.CreateCourse(ctx, models.Course{CourseCode: "cs101", Name: "Other", CreditHours: 3})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	// Updating a course to its own code is fine.
	code := "CS101"
	_, err = s.UpdateCourse(ctx, created.ID, models.CoursePatch{CourseCode: &code})
	assert.NoError(t, err)

	other, err := s.CreateCourse(ctx, models.Course{CourseCode: "CS201", Name: "Data Structures", CreditHours: 4})
	require.NoError(t, err)
	_, err = s.UpdateCourse(ctx, other.ID, models.CoursePatch{CourseCode: &code})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestDepartmentCarriesInstitutionReference(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	instID, facID, _, _ := orgChain(t, s)

	dept, err := s.CreateDepartment(ctx, models.Department{FacultyID: facID, Name: "Mathematics"})
	require.NoError(t, err)
	assert.Equal(t, instID, dept.InstitutionID)
	assert.Equal(t, "Science", dept.FacultyName)
	assert.Equal(t, "Northgate University", dept.InstitutionName)
}

func TestListFacultiesFiltersByInstitution(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	instID, _, _, _ := orgChain(t, s)
	other, err := s.CreateInstitution(ctx, models.Institution{Name: "Southbank College"})
	require.NoError(t, err)
	_, err = s.CreateFaculty(ctx, models.Faculty{InstitutionID: other.ID, Name: "Arts"})
	require.NoError(t, err)

	assert.Len(t, s.ListFaculties(ctx, instID), 1)
	assert.Len(t, s.ListFaculties(ctx, other.ID), 1)
	assert.Len(t, s.ListFaculties(ctx, ""), 2)
}
