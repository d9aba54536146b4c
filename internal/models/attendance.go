package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// AttendanceRecord is a single attendance row. At most one record exists per
// (section_id, student_id, date); the bulk upsert path maintains this.
// Date is normalised to a calendar day (YYYY-MM-DD).
type AttendanceRecord struct {
	ID        string           `json:"id"`
	SectionID string           `json:"section_id"`
	StudentID string           `json:"student_id"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// AttendanceRecordDetail adds the student's identity for display.
type AttendanceRecordDetail struct {
	AttendanceRecord
	StudentName   string `json:"student_name"`
	StudentNumber string `json:"student_number"`
}

// AttendanceEntry is one row of a bulk upsert request.
type AttendanceEntry struct {
	StudentID string           `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
	Notes     string           `json:"notes,omitempty"`
}

// AttendanceSummary aggregates a student's attendance within a section.
type AttendanceSummary struct {
	StudentID string `json:"student_id"`
	SectionID string `json:"section_id"`
	Present   int    `json:"present"`
	Absent    int    `json:"absent"`
	Late      int    `json:"late"`
	Excused   int    `json:"excused"`
	Total     int    `json:"total"`
}
