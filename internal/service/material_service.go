package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
	"github.com/campushq/uni-admin-api/pkg/storage"
)

type materialStore interface {
	ListMaterials(ctx context.Context, sectionID string) []models.CourseMaterial
	GetMaterial(ctx context.Context, id string) (*models.CourseMaterial, error)
	CreateMaterial(ctx context.Context, in models.CourseMaterial) (*models.CourseMaterial, error)
	UpdateMaterial(ctx context.Context, id string, patch models.MaterialPatch) (*models.CourseMaterial, error)
	AttachMaterialFile(ctx context.Context, id, filePath string, fileSize int64) (*models.CourseMaterial, error)
	DeleteMaterial(ctx context.Context, id string) (*models.DeleteAck, error)
}

// CreateMaterialRequest holds payload for publishing a course material.
type CreateMaterialRequest struct {
	SectionID    string `json:"section_id" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	MaterialType string `json:"material_type" validate:"required"`
	Visibility   string `json:"visibility"`
}

// UpdateMaterialRequest holds a partial material update.
type UpdateMaterialRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	MaterialType *string `json:"material_type"`
	Visibility   *string `json:"visibility"`
}

// MaterialService handles course material use-cases, including file
// attachments on local storage and signed download links.
type MaterialService struct {
	store       materialStore
	files       *storage.LocalStorage
	signer      *storage.SignedURLSigner
	validator   *validator.Validate
	logger      *zap.Logger
	maxFileSize int64
}

// NewMaterialService constructs the material service.
func NewMaterialService(store materialStore, files *storage.LocalStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger, maxFileSize int64) *MaterialService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialService{store: store, files: files, signer: signer, validator: validate, logger: logger, maxFileSize: maxFileSize}
}

// List returns the materials published for a section.
func (s *MaterialService) List(ctx context.Context, sectionID string) []models.CourseMaterial {
	return s.store.ListMaterials(ctx, sectionID)
}

func (s *MaterialService) Get(ctx context.Context, id string) (*models.CourseMaterial, error) {
	return s.store.GetMaterial(ctx, id)
}

func (s *MaterialService) Create(ctx context.Context, req CreateMaterialRequest) (*models.CourseMaterial, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid material payload")
	}
	materialType := models.MaterialType(req.MaterialType)
	if !materialType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown material type")
	}
	visibility := models.MaterialVisibility(req.Visibility)
	if req.Visibility != "" && !visibility.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown material visibility")
	}
	return s.store.CreateMaterial(ctx, models.CourseMaterial{
		SectionID:    req.SectionID,
		Title:        req.Title,
		Description:  req.Description,
		MaterialType: materialType,
		Visibility:   visibility,
	})
}

func (s *MaterialService) Update(ctx context.Context, id string, req UpdateMaterialRequest) (*models.CourseMaterial, error) {
	patch := models.MaterialPatch{Title: req.Title, Description: req.Description}
	if req.MaterialType != nil {
		materialType := models.MaterialType(*req.MaterialType)
		if !materialType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown material type")
		}
		patch.MaterialType = &materialType
	}
	if req.Visibility != nil {
		visibility := models.MaterialVisibility(*req.Visibility)
		if !visibility.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown material visibility")
		}
		patch.Visibility = &visibility
	}
	return s.store.UpdateMaterial(ctx, id, patch)
}

// Upload streams a file to local storage and attaches it to the material.
// A previous attachment is removed from disk after the new one is in place.
func (s *MaterialService) Upload(ctx context.Context, id, filename string, r io.Reader) (*models.CourseMaterial, error) {
	material, err := s.store.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}

	relPath := fmt.Sprintf("%s/%d_%s", material.ID, time.Now().UTC().UnixNano(), filepath.Base(filename))
	reader := r
	if s.maxFileSize > 0 {
		reader = io.LimitReader(r, s.maxFileSize+1)
	}
	size, err := s.files.SaveStream(relPath, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}
	if s.maxFileSize > 0 && size > s.maxFileSize {
		if err := s.files.Delete(relPath); err != nil {
			s.logger.Warn("failed to remove oversized upload", zap.String("path", relPath), zap.Error(err))
		}
		return nil, appErrors.Clone(appErrors.ErrValidation, "file exceeds the maximum allowed size")
	}

	previous := material.FilePath
	updated, err := s.store.AttachMaterialFile(ctx, id, relPath, size)
	if err != nil {
		if cleanupErr := s.files.Delete(relPath); cleanupErr != nil {
			s.logger.Warn("failed to clean up orphaned upload", zap.String("path", relPath), zap.Error(cleanupErr))
		}
		return nil, err
	}
	if previous != "" && previous != relPath {
		if err := s.files.Delete(previous); err != nil {
			s.logger.Warn("failed to remove replaced file", zap.String("path", previous), zap.Error(err))
		}
	}
	return updated, nil
}

// DownloadLink issues a signed, expiring token for the material's file.
func (s *MaterialService) DownloadLink(ctx context.Context, id string) (*models.CourseMaterialDownload, error) {
	material, err := s.store.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	if material.FilePath == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "material has no file attached")
	}
	token, expiresAt, err := s.signer.Generate(material.ID, material.FilePath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}
	return &models.CourseMaterialDownload{Material: *material, Token: token, ExpiresAt: expiresAt}, nil
}

// OpenByToken validates a signed token and opens the referenced file.
func (s *MaterialService) OpenByToken(ctx context.Context, token string) (*models.CourseMaterial, *os.File, error) {
	materialID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token")
	}
	material, err := s.store.GetMaterial(ctx, materialID)
	if err != nil {
		return nil, nil, err
	}
	if material.FilePath != relPath {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "download token no longer matches the material")
	}
	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file")
	}
	return material, file, nil
}

// Delete removes the material and its stored file, if any.
func (s *MaterialService) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	material, err := s.store.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	ack, err := s.store.DeleteMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	if material.FilePath != "" {
		if err := s.files.Delete(material.FilePath); err != nil {
			s.logger.Warn("failed to remove stored file", zap.String("path", material.FilePath), zap.Error(err))
		}
	}
	return ack, nil
}
