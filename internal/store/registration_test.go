package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

func TestRegistrationCapacityEnforced(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 1)
	first := makeStudent(t, s, deptID, "NG-001")
	second := makeStudent(t, s, deptID, "NG-002")

	_, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: first, SectionID: secID})
	require.NoError(t, err)

	_, err = s.CreateRegistration(ctx, models.CourseRegistration{StudentID: second, SectionID: secID})
	assert.ErrorIs(t, err, appErrors.ErrCapacityExceeded)

	sec, err := s.GetSection(ctx, secID)
	require.NoError(t, err)
	assert.Equal(t, 1, sec.EnrolledCount)
}

func TestRegistrationDropReleasesSeatOnce(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 1)
	stuID := makeStudent(t, s, deptID, "NG-001")

	reg, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: stuID, SectionID: secID})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusRegistered, reg.Status)

	dropped := models.RegistrationStatusDropped
	_, err = s.UpdateRegistration(ctx, reg.ID, models.RegistrationPatch{Status: &dropped})
	require.NoError(t, err)

	sec, err := s.GetSection(ctx, secID)
	require.NoError(t, err)
	assert.Equal(t, 0, sec.EnrolledCount)

	// Dropping again is a no-op for the counter.
	_, err = s.UpdateRegistration(ctx, reg.ID, models.RegistrationPatch{Status: &dropped})
	require.NoError(t, err)
	sec, err = s.GetSection(ctx, secID)
	require.NoError(t, err)
	assert.Equal(t, 0, sec.EnrolledCount)
}

func TestRegistrationDropFreesSeatForAnotherStudent(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 1)
	first := makeStudent(t, s, deptID, "NG-001")
	second := makeStudent(t, s, deptID, "NG-002")

	reg, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: first, SectionID: secID})
	require.NoError(t, err)

	dropped := models.RegistrationStatusDropped
	_, err = s.UpdateRegistration(ctx, reg.ID, models.RegistrationPatch{Status: &dropped})
	require.NoError(t, err)

	_, err = s.CreateRegistration(ctx, models.CourseRegistration{StudentID: second, SectionID: secID})
	require.NoError(t, err)

	sec, err := s.GetSection(ctx, secID)
	require.NoError(t, err)
	assert.Equal(t, 1, sec.EnrolledCount)
}

func TestRegistrationDuplicateActiveRejected(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 10)
	stuID := makeStudent(t, s, deptID, "NG-001")

	_, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: stuID, SectionID: secID})
	require.NoError(t, err)

	_, err = s.CreateRegistration(ctx, models.CourseRegistration{StudentID: stuID, SectionID: secID})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	// After dropping the first, registering again is allowed.
	regs := s.ListRegistrations(ctx, secID, stuID)
	require.Len(t, regs, 1)
	dropped := models.RegistrationStatusDropped
	_, err = s.UpdateRegistration(ctx, regs[0].ID, models.RegistrationPatch{Status: &dropped})
	require.NoError(t, err)

	_, err = s.CreateRegistration(ctx, models.CourseRegistration{StudentID: stuID, SectionID: secID})
	assert.NoError(t, err)
}

func TestRegistrationReactivateChecksCapacity(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 1)
	first := makeStudent(t, s, deptID, "NG-001")
	second := makeStudent(t, s, deptID, "NG-002")

	reg, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: first, SectionID: secID})
	require.NoError(t, err)
	dropped := models.RegistrationStatusDropped
	_, err = s.UpdateRegistration(ctx, reg.ID, models.RegistrationPatch{Status: &dropped})
	require.NoError(t, err)

	// The freed seat goes to the second student.
	_, err = s.CreateRegistration(ctx, models.CourseRegistration{StudentID: second, SectionID: secID})
	require.NoError(t, err)

	registered := models.RegistrationStatusRegistered
	_, err = s.UpdateRegistration(ctx, reg.ID, models.RegistrationPatch{Status: &registered})
	assert.ErrorIs(t, err, appErrors.ErrCapacityExceeded)
}

func TestDeleteRegistrationAdjustsCount(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 10)
	stuID := makeStudent(t, s, deptID, "NG-001")

	reg, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: stuID, SectionID: secID})
	require.NoError(t, err)

	ack, err := s.DeleteRegistration(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, ack.ID)

	sec, err := s.GetSection(ctx, secID)
	require.NoError(t, err)
	assert.Equal(t, 0, sec.EnrolledCount)
}

func TestDeleteDroppedRegistrationLeavesCountAlone(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 10)
	first := makeStudent(t, s, deptID, "NG-001")
	second := makeStudent(t, s, deptID, "NG-002")

	reg, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: first, SectionID: secID})
	require.NoError(t, err)
	_, err = s.CreateRegistration(ctx, models.CourseRegistration{StudentID: second, SectionID: secID})
	require.NoError(t, err)

	dropped := models.RegistrationStatusDropped
	_, err = s.UpdateRegistration(ctx, reg.ID, models.RegistrationPatch{Status: &dropped})
	require.NoError(t, err)

	_, err = s.DeleteRegistration(ctx, reg.ID)
	require.NoError(t, err)

	sec, err := s.GetSection(ctx, secID)
	require.NoError(t, err)
	assert.Equal(t, 1, sec.EnrolledCount)
}

func TestRegistrationUnknownReferences(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 10)
	stuID := makeStudent(t, s, deptID, "NG-001")

	_, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: "stu_missing", SectionID: secID})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = s.CreateRegistration(ctx, models.CourseRegistration{StudentID: stuID, SectionID: "sec_missing"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
