package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

type courseStore interface {
	ListCourses(ctx context.Context, filter models.CourseFilter) []models.Course
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	CreateCourse(ctx context.Context, in models.Course) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) (*models.DeleteAck, error)
}

// CreateCourseRequest holds payload for creating courses.
type CreateCourseRequest struct {
	CourseCode  string `json:"course_code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	CreditHours int    `json:"credit_hours" validate:"required,min=1"`
}

// UpdateCourseRequest holds a partial course update.
type UpdateCourseRequest struct {
	CourseCode  *string `json:"course_code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CreditHours *int    `json:"credit_hours"`
}

// CourseService handles course catalogue use-cases.
type CourseService struct {
	store     courseStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(store courseStore, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{store: store, validator: validate, logger: logger}
}

// List returns courses with pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	all := s.store.ListCourses(ctx, filter)
	page, size := normalizePage(filter.Page, filter.PageSize)
	window := paginate(all, page, size)
	return window, &models.Pagination{Page: page, PageSize: size, TotalCount: len(all)}, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	return s.store.GetCourse(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	return s.store.CreateCourse(ctx, models.Course{
		CourseCode:  req.CourseCode,
		Name:        req.Name,
		Description: req.Description,
		CreditHours: req.CreditHours,
	})
}

func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	if req.CreditHours != nil && *req.CreditHours < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "credit hours must be positive")
	}
	return s.store.UpdateCourse(ctx, id, models.CoursePatch{
		CourseCode:  req.CourseCode,
		Name:        req.Name,
		Description: req.Description,
		CreditHours: req.CreditHours,
	})
}

func (s *CourseService) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteCourse(ctx, id)
}
