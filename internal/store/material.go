package store

import (
	"context"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

// ListMaterials returns the materials of a section in insertion order.
func (s *Store) ListMaterials(_ context.Context, sectionID string) []models.CourseMaterial {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CourseMaterial, 0)
	for _, m := range s.materials {
		if sectionID != "" && m.SectionID != sectionID {
			continue
		}
		out = append(out, m)
	}
	return out
}

// GetMaterial returns a single material by id.
func (s *Store) GetMaterial(_ context.Context, id string) (*models.CourseMaterial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.findMaterial(id)
	if m == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
	}
	out := *m
	return &out, nil
}

// CreateMaterial appends a material after checking its section exists.
func (s *Store) CreateMaterial(_ context.Context, in models.CourseMaterial) (*models.CourseMaterial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findSection(in.SectionID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	now := s.now()
	in.ID = s.newID("mat")
	if in.Visibility == "" {
		in.Visibility = models.MaterialVisibilityStudents
	}
	in.CreatedAt = now
	in.UpdatedAt = now
	s.materials = append(s.materials, in)
	out := in
	return &out, nil
}

// UpdateMaterial shallow-merges the patch onto the stored row.
func (s *Store) UpdateMaterial(_ context.Context, id string, patch models.MaterialPatch) (*models.CourseMaterial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.findMaterial(id)
	if m == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
	}
	applyString(&m.Title, patch.Title)
	applyString(&m.Description, patch.Description)
	if patch.MaterialType != nil {
		m.MaterialType = *patch.MaterialType
	}
	if patch.Visibility != nil {
		m.Visibility = *patch.Visibility
	}
	m.UpdatedAt = s.now()
	out := *m
	return &out, nil
}

// AttachMaterialFile records the stored file's path and size on a material.
func (s *Store) AttachMaterialFile(_ context.Context, id, filePath string, fileSize int64) (*models.CourseMaterial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.findMaterial(id)
	if m == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
	}
	m.FilePath = filePath
	m.FileSize = fileSize
	m.UpdatedAt = s.now()
	out := *m
	return &out, nil
}

// DeleteMaterial removes a single material row.
func (s *Store) DeleteMaterial(_ context.Context, id string) (*models.DeleteAck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.findMaterial(id)
	if m == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
	}
	label := m.Title
	s.materials, _ = removeWhere(s.materials,
		func(row models.CourseMaterial) bool { return row.ID == id },
		func(row models.CourseMaterial) string { return row.ID })
	return &models.DeleteAck{ID: id, Label: label}, nil
}

func (s *Store) findMaterial(id string) *models.CourseMaterial {
	for i := range s.materials {
		if s.materials[i].ID == id {
			return &s.materials[i]
		}
	}
	return nil
}
