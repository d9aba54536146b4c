package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

func TestBulkUpsertAttendanceCreatesThenUpdates(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 30)
	first := makeStudent(t, s, deptID, "NG-001")
	second := makeStudent(t, s, deptID, "NG-002")

	records, err := s.BulkUpsertAttendance(ctx, secID, "2025-09-01", []models.AttendanceEntry{
		{StudentID: first, Status: models.AttendanceStatusPresent},
		{StudentID: second, Status: models.AttendanceStatusAbsent, Notes: "sick"},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0].StudentID)
	assert.Equal(t, second, records[1].StudentID)
	assert.Equal(t, "sick", records[1].Notes)

	// Re-submitting the same date updates in place, no duplicates.
	records, err = s.BulkUpsertAttendance(ctx, secID, "2025-09-01", []models.AttendanceEntry{
		{StudentID: second, Status: models.AttendanceStatusLate},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendanceStatusLate, records[0].Status)
	assert.Empty(t, records[0].Notes)

	all := s.ListAttendance(ctx, secID, "2025-09-01")
	assert.Len(t, all, 2)

	// A different date creates a new record for the same student.
	_, err = s.BulkUpsertAttendance(ctx, secID, "2025-09-03", []models.AttendanceEntry{
		{StudentID: first, Status: models.AttendanceStatusPresent},
	})
	require.NoError(t, err)
	assert.Len(t, s.ListAttendance(ctx, secID, ""), 3)
}

func TestBulkUpsertAttendanceIsAllOrNothing(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 30)
	stuID := makeStudent(t, s, deptID, "NG-001")

	_, err := s.BulkUpsertAttendance(ctx, secID, "2025-09-01", []models.AttendanceEntry{
		{StudentID: stuID, Status: models.AttendanceStatusPresent},
		{StudentID: "stu_missing", Status: models.AttendanceStatusAbsent},
	})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Empty(t, s.ListAttendance(ctx, secID, ""))

	_, err = s.BulkUpsertAttendance(ctx, "sec_missing", "2025-09-01", nil)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAttendanceSummaryCountsByStatus(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 30)
	stuID := makeStudent(t, s, deptID, "NG-001")

	dates := map[string]models.AttendanceStatus{
		"2025-09-01": models.AttendanceStatusPresent,
		"2025-09-03": models.AttendanceStatusPresent,
		"2025-09-05": models.AttendanceStatusLate,
		"2025-09-08": models.AttendanceStatusAbsent,
		"2025-09-10": models.AttendanceStatusExcused,
	}
	for date, status := range dates {
		_, err := s.BulkUpsertAttendance(ctx, secID, date, []models.AttendanceEntry{{StudentID: stuID, Status: status}})
		require.NoError(t, err)
	}

	summary, err := s.AttendanceSummary(ctx, secID, stuID)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, summary.Excused)
}

func TestDeleteAttendanceRecord(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	_, _, deptID, _ := orgChain(t, s)
	secID, _, _ := makeSection(t, s, 30)
	stuID := makeStudent(t, s, deptID, "NG-001")

	records, err := s.BulkUpsertAttendance(ctx, secID, "2025-09-01", []models.AttendanceEntry{
		{StudentID: stuID, Status: models.AttendanceStatusPresent},
	})
	require.NoError(t, err)

	_, err = s.DeleteAttendance(ctx, records[0].ID)
	require.NoError(t, err)
	assert.Empty(t, s.ListAttendance(ctx, secID, ""))

	_, err = s.DeleteAttendance(ctx, records[0].ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
