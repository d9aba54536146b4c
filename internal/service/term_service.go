package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

type termStore interface {
	ListTerms(ctx context.Context, filter models.TermFilter) []models.AcademicTerm
	GetTerm(ctx context.Context, id string) (*models.AcademicTerm, error)
	CreateTerm(ctx context.Context, in models.AcademicTerm) (*models.AcademicTerm, error)
	UpdateTerm(ctx context.Context, id string, patch models.TermPatch) (*models.AcademicTerm, error)
	DeleteTerm(ctx context.Context, id string) (*models.DeleteAck, error)
}

// CreateTermRequest holds payload for creating academic terms.
type CreateTermRequest struct {
	Name      string    `json:"name"`
	TermType  string    `json:"term_type" validate:"required"`
	Year      int       `json:"year" validate:"required,min=1900"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Status    string    `json:"status"`
}

// UpdateTermRequest holds a partial term update.
type UpdateTermRequest struct {
	Name      *string    `json:"name"`
	TermType  *string    `json:"term_type"`
	Year      *int       `json:"year"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Status    *string    `json:"status"`
}

// TermService handles academic calendar use-cases.
type TermService struct {
	store     termStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTermService constructs the term service.
func NewTermService(store termStore, validate *validator.Validate, logger *zap.Logger) *TermService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermService{store: store, validator: validate, logger: logger}
}

// List returns terms with pagination metadata.
func (s *TermService) List(ctx context.Context, filter models.TermFilter) ([]models.AcademicTerm, *models.Pagination, error) {
	all := s.store.ListTerms(ctx, filter)
	page, size := normalizePage(filter.Page, filter.PageSize)
	return paginate(all, page, size), &models.Pagination{Page: page, PageSize: size, TotalCount: len(all)}, nil
}

func (s *TermService) Get(ctx context.Context, id string) (*models.AcademicTerm, error) {
	return s.store.GetTerm(ctx, id)
}

func (s *TermService) Create(ctx context.Context, req CreateTermRequest) (*models.AcademicTerm, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid term payload")
	}
	termType := models.TermType(req.TermType)
	if !termType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown term type")
	}
	status := models.TermStatus(req.Status)
	if req.Status != "" && !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown term status")
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date must be after start date")
	}
	return s.store.CreateTerm(ctx, models.AcademicTerm{
		Name:      req.Name,
		TermType:  termType,
		Year:      req.Year,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    status,
	})
}

func (s *TermService) Update(ctx context.Context, id string, req UpdateTermRequest) (*models.AcademicTerm, error) {
	patch := models.TermPatch{
		Name:      req.Name,
		Year:      req.Year,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.TermType != nil {
		termType := models.TermType(*req.TermType)
		if !termType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown term type")
		}
		patch.TermType = &termType
	}
	if req.Status != nil {
		status := models.TermStatus(*req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown term status")
		}
		patch.Status = &status
	}
	return s.store.UpdateTerm(ctx, id, patch)
}

func (s *TermService) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteTerm(ctx, id)
}
