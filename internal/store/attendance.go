package store

import (
	"context"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

// ListAttendance returns attendance records for a section, optionally
// narrowed to one date, enriched with student identities.
func (s *Store) ListAttendance(_ context.Context, sectionID, date string) []models.AttendanceRecordDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AttendanceRecordDetail, 0)
	for _, rec := range s.attendance {
		if sectionID != "" && rec.SectionID != sectionID {
			continue
		}
		if date != "" && rec.Date != date {
			continue
		}
		out = append(out, s.enrichAttendance(rec))
	}
	return out
}

// BulkUpsertAttendance records attendance for a section on one date. For
// each entry an existing (section, student, date) record is updated in
// place, otherwise a new record is appended. Affected records are returned
// in input order. References are validated up front so the call is
// all-or-nothing.
func (s *Store) BulkUpsertAttendance(_ context.Context, sectionID, date string, entries []models.AttendanceEntry) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findSection(sectionID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	for _, entry := range entries {
		if s.findStudent(entry.StudentID) == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found: "+entry.StudentID)
		}
	}

	now := s.now()
	out := make([]models.AttendanceRecord, 0, len(entries))
	for _, entry := range entries {
		existing := s.findAttendanceByKey(sectionID, entry.StudentID, date)
		if existing != nil {
			existing.Status = entry.Status
			existing.Notes = entry.Notes
			existing.UpdatedAt = now
			out = append(out, *existing)
			continue
		}
		rec := models.AttendanceRecord{
			ID:        s.newID("att"),
			SectionID: sectionID,
			StudentID: entry.StudentID,
			Date:      date,
			Status:    entry.Status,
			Notes:     entry.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.attendance = append(s.attendance, rec)
		out = append(out, rec)
	}
	return out, nil
}

// DeleteAttendance removes a single attendance record.
func (s *Store) DeleteAttendance(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var label string
	found := false
	for _, rec := range s.attendance {
		if rec.ID == id {
			found = true
			label = rec.Date
			break
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
	}
	s.attendance, _ = removeWhere(s.attendance,
		func(row models.AttendanceRecord) bool { return row.ID == id },
		func(row models.AttendanceRecord) string { return row.ID })
	return &models.DeleteAck{ID: id, Label: label}, nil
}

// AttendanceSummary aggregates one student's attendance within a section.
func (s *Store) AttendanceSummary(_ context.Context, sectionID, studentID string) (*models.AttendanceSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findSection(sectionID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	if s.findStudent(studentID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	summary := &models.AttendanceSummary{SectionID: sectionID, StudentID: studentID}
	for _, rec := range s.attendance {
		if rec.SectionID != sectionID || rec.StudentID != studentID {
			continue
		}
		summary.Total++
		switch rec.Status {
		case models.AttendanceStatusPresent:
			summary.Present++
		case models.AttendanceStatusAbsent:
			summary.Absent++
		case models.AttendanceStatusLate:
			summary.Late++
		case models.AttendanceStatusExcused:
			summary.Excused++
		}
	}
	return summary, nil
}

func (s *Store) findAttendanceByKey(sectionID, studentID, date string) *models.AttendanceRecord {
	for i := range s.attendance {
		rec := &s.attendance[i]
		if rec.SectionID == sectionID && rec.StudentID == studentID && rec.Date == date {
			return rec
		}
	}
	return nil
}

func (s *Store) enrichAttendance(rec models.AttendanceRecord) models.AttendanceRecordDetail {
	detail := models.AttendanceRecordDetail{AttendanceRecord: rec}
	if stu := s.findStudent(rec.StudentID); stu != nil {
		detail.StudentName = stu.FullName()
		detail.StudentNumber = stu.StudentNumber
	}
	return detail
}
