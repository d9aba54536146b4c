package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

func TestStudentNumberUnique(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)

	makeStudent(t, s, deptID, "NG-001")
	_, err := s.CreateStudent(ctx, models.Student{StudentNumber: "NG-001", FirstName: "Dup", LastName: "Licate", Email: "dup@test", DepartmentID: deptID})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestCreateStudentRequiresDepartment(t *testing.T) {
	s := newTestStore()
	_, err := s.CreateStudent(context.Background(), models.Student{StudentNumber: "NG-001", FirstName: "A", LastName: "B", Email: "a@test", DepartmentID: "dept_missing"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestEnrollmentPairUnique(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, progID := orgChain(t, s)
	stuID := makeStudent(t, s, deptID, "NG-001")

	created, err := s.CreateEnrollment(ctx, models.ProgramEnrollment{StudentID: stuID, ProgramID: progID})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusEnrolled, created.Status)
	assert.False(t, created.EnrollmentDate.IsZero())

	_, err = s.CreateEnrollment(ctx, models.ProgramEnrollment{StudentID: stuID, ProgramID: progID})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestEnrollmentStatusTransition(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, progID := orgChain(t, s)
	stuID := makeStudent(t, s, deptID, "NG-001")

	created, err := s.CreateEnrollment(ctx, models.ProgramEnrollment{StudentID: stuID, ProgramID: progID})
	require.NoError(t, err)

	withdrawn := models.EnrollmentStatusWithdrawn
	updated, err := s.UpdateEnrollment(ctx, created.ID, models.ProgramEnrollmentPatch{Status: &withdrawn})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusWithdrawn, updated.Status)
}

func TestUserEmailUniqueCaseInsensitive(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, models.User{Email: "Admin@Test.edu", FullName: "One", Active: true}, []models.RoleType{models.RoleAdmin})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, models.User{Email: "admin@test.edu", FullName: "Two", Active: true}, nil)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	found, err := s.GetUserByEmail(ctx, "ADMIN@TEST.EDU")
	require.NoError(t, err)
	assert.Equal(t, "One", found.FullName)
}

func TestAssignAndRevokeRole(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, models.User{Email: "staff@test.edu", FullName: "Staff", Active: true}, []models.RoleType{models.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, []models.RoleType{models.RoleStaff}, user.Roles)

	assignment, err := s.AssignRole(ctx, user.ID, models.RoleDepartmentAdmin)
	require.NoError(t, err)

	_, err = s.AssignRole(ctx, user.ID, models.RoleDepartmentAdmin)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	detail, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Roles, 2)

	_, err = s.RevokeRole(ctx, assignment.ID)
	require.NoError(t, err)
	detail, err = s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.RoleType{models.RoleStaff}, detail.Roles)
}

func TestDeleteUserRemovesRoleAssignments(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, models.User{Email: "gone@test.edu", FullName: "Gone", Active: true}, []models.RoleType{models.RoleStudent})
	require.NoError(t, err)

	_, err = s.DeleteUser(ctx, user.ID)
	require.NoError(t, err)

	_, err = s.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestSeedIsIdempotent(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))
	users := s.ListUsers(ctx, models.UserFilter{})
	require.NotEmpty(t, users)

	require.NoError(t, s.Seed(ctx))
	assert.Len(t, s.ListUsers(ctx, models.UserFilter{}), len(users))
}
