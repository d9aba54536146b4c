package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

type sectionStore interface {
	ListSections(ctx context.Context, filter models.SectionFilter) []models.CourseSectionDetail
	GetSection(ctx context.Context, id string) (*models.CourseSectionDetail, error)
	CreateSection(ctx context.Context, in models.CourseSection) (*models.CourseSectionDetail, error)
	UpdateSection(ctx context.Context, id string, patch models.SectionPatch) (*models.CourseSectionDetail, error)
	DeleteSection(ctx context.Context, id string) (*models.DeleteAck, error)

	ListInstructors(ctx context.Context, sectionID string) []models.CourseInstructorDetail
	CreateInstructor(ctx context.Context, in models.CourseInstructor) (*models.CourseInstructorDetail, error)
	UpdateInstructor(ctx context.Context, id string, patch models.InstructorPatch) (*models.CourseInstructorDetail, error)
	DeleteInstructor(ctx context.Context, id string) (*models.DeleteAck, error)
}

// CreateSectionRequest holds payload for opening a section of a course.
type CreateSectionRequest struct {
	CourseID      string `json:"course_id" validate:"required"`
	TermID        string `json:"term_id" validate:"required"`
	SectionNumber string `json:"section_number" validate:"required"`
	Capacity      int    `json:"capacity" validate:"required,min=1"`
	Schedule      string `json:"schedule"`
	Room          string `json:"room"`
	Status        string `json:"status"`
}

// UpdateSectionRequest holds a partial section update. The enrolled count
// is derived from registrations and cannot be set here.
type UpdateSectionRequest struct {
	SectionNumber *string `json:"section_number"`
	Capacity      *int    `json:"capacity"`
	Schedule      *string `json:"schedule"`
	Room          *string `json:"room"`
	Status        *string `json:"status"`
}

// AssignInstructorRequest attaches a user to a section's teaching staff.
type AssignInstructorRequest struct {
	SectionID string `json:"section_id" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
	Role      string `json:"role" validate:"required"`
}

// UpdateInstructorRequest changes an instructor's role within a section.
type UpdateInstructorRequest struct {
	Role *string `json:"role"`
}

// SectionService handles section and teaching-staff use-cases.
type SectionService struct {
	store     sectionStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSectionService constructs the section service.
func NewSectionService(store sectionStore, validate *validator.Validate, logger *zap.Logger) *SectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionService{store: store, validator: validate, logger: logger}
}

// List returns sections with pagination metadata.
func (s *SectionService) List(ctx context.Context, filter models.SectionFilter) ([]models.CourseSectionDetail, *models.Pagination, error) {
	all := s.store.ListSections(ctx, filter)
	page, size := normalizePage(filter.Page, filter.PageSize)
	return paginate(all, page, size), &models.Pagination{Page: page, PageSize: size, TotalCount: len(all)}, nil
}

func (s *SectionService) Get(ctx context.Context, id string) (*models.CourseSectionDetail, error) {
	return s.store.GetSection(ctx, id)
}

func (s *SectionService) Create(ctx context.Context, req CreateSectionRequest) (*models.CourseSectionDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}
	status := models.SectionStatus(req.Status)
	if req.Status != "" && !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown section status")
	}
	return s.store.CreateSection(ctx, models.CourseSection{
		CourseID:      req.CourseID,
		TermID:        req.TermID,
		SectionNumber: req.SectionNumber,
		Capacity:      req.Capacity,
		Schedule:      req.Schedule,
		Room:          req.Room,
		Status:        status,
	})
}

func (s *SectionService) Update(ctx context.Context, id string, req UpdateSectionRequest) (*models.CourseSectionDetail, error) {
	if req.Capacity != nil && *req.Capacity < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "capacity must be positive")
	}
	patch := models.SectionPatch{
		SectionNumber: req.SectionNumber,
		Capacity:      req.Capacity,
		Schedule:      req.Schedule,
		Room:          req.Room,
	}
	if req.Status != nil {
		status := models.SectionStatus(*req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown section status")
		}
		patch.Status = &status
	}
	return s.store.UpdateSection(ctx, id, patch)
}

func (s *SectionService) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteSection(ctx, id)
}

// ListInstructors returns the teaching staff of a section.
func (s *SectionService) ListInstructors(ctx context.Context, sectionID string) []models.CourseInstructorDetail {
	return s.store.ListInstructors(ctx, sectionID)
}

func (s *SectionService) AssignInstructor(ctx context.Context, req AssignInstructorRequest) (*models.CourseInstructorDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	role := models.InstructorRole(req.Role)
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown instructor role")
	}
	return s.store.CreateInstructor(ctx, models.CourseInstructor{
		SectionID: req.SectionID,
		UserID:    req.UserID,
		Role:      role,
	})
}

func (s *SectionService) UpdateInstructor(ctx context.Context, id string, req UpdateInstructorRequest) (*models.CourseInstructorDetail, error) {
	patch := models.InstructorPatch{}
	if req.Role != nil {
		role := models.InstructorRole(*req.Role)
		if !role.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown instructor role")
		}
		patch.Role = &role
	}
	return s.store.UpdateInstructor(ctx, id, patch)
}

func (s *SectionService) RemoveInstructor(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteInstructor(ctx, id)
}
