package models

import "time"

// TermType represents the season of an academic term.
type TermType string

const (
	TermTypeFall   TermType = "fall"
	TermTypeSpring TermType = "spring"
	TermTypeSummer TermType = "summer"
)

// Valid returns true when the type is a supported value.
func (t TermType) Valid() bool {
	switch t {
	case TermTypeFall, TermTypeSpring, TermTypeSummer:
		return true
	default:
		return false
	}
}

// TermStatus tracks a term's position in the academic calendar.
type TermStatus string

const (
	TermStatusUpcoming  TermStatus = "upcoming"
	TermStatusActive    TermStatus = "active"
	TermStatusCompleted TermStatus = "completed"
)

// Valid returns true when the status is a supported value.
func (s TermStatus) Valid() bool {
	switch s {
	case TermStatusUpcoming, TermStatusActive, TermStatusCompleted:
		return true
	default:
		return false
	}
}

// AcademicTerm models a term within the institution calendar.
type AcademicTerm struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	TermType  TermType   `json:"term_type"`
	Year      int        `json:"year"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Status    TermStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TermFilter captures filtering criteria for listing terms.
type TermFilter struct {
	Year     int
	TermType TermType
	Status   TermStatus
	Page     int
	PageSize int
}
