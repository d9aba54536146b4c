package store

import (
	"context"
	"fmt"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

// ListTerms returns terms in insertion order, optionally filtered. Callers
// that want calendar ordering sort the result themselves.
func (s *Store) ListTerms(_ context.Context, filter models.TermFilter) []models.AcademicTerm {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AcademicTerm, 0)
	for _, t := range s.terms {
		if filter.Year != 0 && t.Year != filter.Year {
			continue
		}
		if filter.TermType != "" && t.TermType != filter.TermType {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out
}

// GetTerm returns a single term by id.
func (s *Store) GetTerm(_ context.Context, id string) (*models.AcademicTerm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.findTerm(id)
	if t == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}
	out := *t
	return &out, nil
}

// CreateTerm appends an academic term. An empty name is derived from the
// type and year, an empty status defaults to upcoming.
func (s *Store) CreateTerm(_ context.Context, in models.AcademicTerm) (*models.AcademicTerm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	in.ID = s.newID("term")
	if in.Name == "" {
		in.Name = fmt.Sprintf("%s %d", in.TermType, in.Year)
	}
	if in.Status == "" {
		in.Status = models.TermStatusUpcoming
	}
	in.CreatedAt = now
	in.UpdatedAt = now
	s.terms = append(s.terms, in)
	out := in
	return &out, nil
}

// UpdateTerm shallow-merges the patch onto the stored row.
func (s *Store) UpdateTerm(_ context.Context, id string, patch models.TermPatch) (*models.AcademicTerm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.findTerm(id)
	if t == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}
	applyString(&t.Name, patch.Name)
	if patch.TermType != nil {
		t.TermType = *patch.TermType
	}
	applyInt(&t.Year, patch.Year)
	applyTime(&t.StartDate, patch.StartDate)
	applyTime(&t.EndDate, patch.EndDate)
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.UpdatedAt = s.now()
	out := *t
	return &out, nil
}

// DeleteTerm removes the term and cascades to its sections and, through
// them, to instructors, registrations, materials and attendance.
func (s *Store) DeleteTerm(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.findTerm(id)
	if t == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}
	label := t.Name
	s.terms, _ = removeWhere(s.terms,
		func(row models.AcademicTerm) bool { return row.ID == id },
		func(row models.AcademicTerm) string { return row.ID })
	s.cascade(kindTerm, id)
	return &models.DeleteAck{ID: id, Label: label}, nil
}

func (s *Store) findTerm(id string) *models.AcademicTerm {
	for i := range s.terms {
		if s.terms[i].ID == id {
			return &s.terms[i]
		}
	}
	return nil
}
