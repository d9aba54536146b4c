package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	"github.com/campushq/uni-admin-api/internal/store"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

func registrationFixture(t *testing.T, capacity int) (*RegistrationService, *store.Store, string, string) {
	t.Helper()
	ctx := context.Background()
	st := store.New()

	inst, err := st.CreateInstitution(ctx, models.Institution{Name: "Northgate"})
	require.NoError(t, err)
	fac, err := st.CreateFaculty(ctx, models.Faculty{InstitutionID: inst.ID, Name: "Science"})
	require.NoError(t, err)
	dept, err := st.CreateDepartment(ctx, models.Department{FacultyID: fac.ID, Name: "CS"})
	require.NoError(t, err)
	course, err := st.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro", CreditHours: 3})
	require.NoError(t, err)
	term, err := st.CreateTerm(ctx, models.AcademicTerm{TermType: models.TermTypeFall, Year: 2025})
	require.NoError(t, err)
	sec, err := st.CreateSection(ctx, models.CourseSection{CourseID: course.ID, TermID: term.ID, SectionNumber: "A", Capacity: capacity})
	require.NoError(t, err)
	stu, err := st.CreateStudent(ctx, models.Student{StudentNumber: "NG-001", FirstName: "Amina", LastName: "Diallo", Email: "a@test", DepartmentID: dept.ID})
	require.NoError(t, err)

	return NewRegistrationService(st, nil, nil), st, sec.ID, stu.ID
}

func TestRegistrationServiceCreateAndDrop(t *testing.T) {
	svc, st, secID, stuID := registrationFixture(t, 5)
	ctx := context.Background()

	reg, err := svc.Create(ctx, CreateRegistrationRequest{StudentID: stuID, SectionID: secID})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusRegistered, reg.Status)
	assert.Equal(t, "Amina Diallo", reg.StudentName)
	assert.Equal(t, "CS101", reg.CourseCode)

	dropped, err := svc.Drop(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusDropped, dropped.Status)

	sec, err := st.GetSection(ctx, secID)
	require.NoError(t, err)
	assert.Equal(t, 0, sec.EnrolledCount)
}

func TestRegistrationServiceValidation(t *testing.T) {
	svc, _, secID, _ := registrationFixture(t, 5)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRegistrationRequest{SectionID: secID})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	bogus := "unknown"
	_, err = svc.Update(ctx, "reg_missing", UpdateRegistrationRequest{Status: &bogus})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestRegistrationServicePassesStoreErrorsThrough(t *testing.T) {
	svc, _, secID, stuID := registrationFixture(t, 1)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRegistrationRequest{StudentID: stuID, SectionID: secID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRegistrationRequest{StudentID: stuID, SectionID: secID})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}
