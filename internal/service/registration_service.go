package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

type registrationStore interface {
	ListRegistrations(ctx context.Context, sectionID, studentID string) []models.CourseRegistrationDetail
	GetRegistration(ctx context.Context, id string) (*models.CourseRegistrationDetail, error)
	CreateRegistration(ctx context.Context, in models.CourseRegistration) (*models.CourseRegistrationDetail, error)
	UpdateRegistration(ctx context.Context, id string, patch models.RegistrationPatch) (*models.CourseRegistrationDetail, error)
	DeleteRegistration(ctx context.Context, id string) (*models.DeleteAck, error)
}

// CreateRegistrationRequest registers a student into a section.
type CreateRegistrationRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	SectionID string `json:"section_id" validate:"required"`
}

// UpdateRegistrationRequest changes a registration's status.
type UpdateRegistrationRequest struct {
	Status *string `json:"status"`
}

// RegistrationService handles course registration use-cases. Seat
// accounting lives in the store; this layer only shapes payloads.
type RegistrationService struct {
	store     registrationStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs the registration service.
func NewRegistrationService(store registrationStore, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{store: store, validator: validate, logger: logger}
}

// List returns registrations filtered by section and/or student.
func (s *RegistrationService) List(ctx context.Context, sectionID, studentID string) []models.CourseRegistrationDetail {
	return s.store.ListRegistrations(ctx, sectionID, studentID)
}

func (s *RegistrationService) Get(ctx context.Context, id string) (*models.CourseRegistrationDetail, error) {
	return s.store.GetRegistration(ctx, id)
}

func (s *RegistrationService) Create(ctx context.Context, req CreateRegistrationRequest) (*models.CourseRegistrationDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	return s.store.CreateRegistration(ctx, models.CourseRegistration{
		StudentID: req.StudentID,
		SectionID: req.SectionID,
	})
}

func (s *RegistrationService) Update(ctx context.Context, id string, req UpdateRegistrationRequest) (*models.CourseRegistrationDetail, error) {
	patch := models.RegistrationPatch{}
	if req.Status != nil {
		status := models.RegistrationStatus(*req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown registration status")
		}
		patch.Status = &status
	}
	return s.store.UpdateRegistration(ctx, id, patch)
}

// Drop marks a registration dropped, releasing its seat.
func (s *RegistrationService) Drop(ctx context.Context, id string) (*models.CourseRegistrationDetail, error) {
	dropped := models.RegistrationStatusDropped
	return s.store.UpdateRegistration(ctx, id, models.RegistrationPatch{Status: &dropped})
}

func (s *RegistrationService) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteRegistration(ctx, id)
}
