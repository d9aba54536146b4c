package models

import "time"

// MaterialType categorises course materials.
type MaterialType string

const (
	MaterialTypeLectureNotes MaterialType = "lecture_notes"
	MaterialTypeAssignment   MaterialType = "assignment"
	MaterialTypeSyllabus     MaterialType = "syllabus"
	MaterialTypeReading      MaterialType = "reading"
	MaterialTypeOther        MaterialType = "other"
)

// Valid returns true when the type is a supported value.
func (t MaterialType) Valid() bool {
	switch t {
	case MaterialTypeLectureNotes, MaterialTypeAssignment, MaterialTypeSyllabus, MaterialTypeReading, MaterialTypeOther:
		return true
	default:
		return false
	}
}

// MaterialVisibility controls who can see a material.
type MaterialVisibility string

const (
	MaterialVisibilityPublic   MaterialVisibility = "public"
	MaterialVisibilityStudents MaterialVisibility = "students"
	MaterialVisibilityPrivate  MaterialVisibility = "private"
)

// Valid returns true when the visibility is a supported value.
func (v MaterialVisibility) Valid() bool {
	switch v {
	case MaterialVisibilityPublic, MaterialVisibilityStudents, MaterialVisibilityPrivate:
		return true
	default:
		return false
	}
}

// CourseMaterial is a document attached to a section. FilePath points at the
// stored file when one has been uploaded.
type CourseMaterial struct {
	ID           string             `json:"id"`
	SectionID    string             `json:"section_id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	MaterialType MaterialType       `json:"material_type"`
	Visibility   MaterialVisibility `json:"visibility"`
	FilePath     string             `json:"file_path,omitempty"`
	FileSize     int64              `json:"file_size,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// CourseMaterialDownload pairs a material with a signed download token.
type CourseMaterialDownload struct {
	Material  CourseMaterial `json:"material"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
}
