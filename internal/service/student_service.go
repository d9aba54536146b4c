package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

type studentStore interface {
	ListStudents(ctx context.Context, filter models.StudentFilter) []models.StudentDetail
	GetStudent(ctx context.Context, id string) (*models.StudentDetail, error)
	CreateStudent(ctx context.Context, in models.Student) (*models.StudentDetail, error)
	UpdateStudent(ctx context.Context, id string, patch models.StudentPatch) (*models.StudentDetail, error)
	DeleteStudent(ctx context.Context, id string) (*models.DeleteAck, error)

	ListEnrollments(ctx context.Context, studentID, programID string) []models.ProgramEnrollmentDetail
	CreateEnrollment(ctx context.Context, in models.ProgramEnrollment) (*models.ProgramEnrollmentDetail, error)
	UpdateEnrollment(ctx context.Context, id string, patch models.ProgramEnrollmentPatch) (*models.ProgramEnrollmentDetail, error)
	DeleteEnrollment(ctx context.Context, id string) (*models.DeleteAck, error)
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	StudentNumber string `json:"student_number" validate:"required"`
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	DepartmentID  string `json:"department_id" validate:"required"`
	UserID        string `json:"user_id"`
}

// UpdateStudentRequest holds a partial student update.
type UpdateStudentRequest struct {
	StudentNumber *string `json:"student_number"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         *string `json:"email"`
	DepartmentID  *string `json:"department_id"`
	UserID        *string `json:"user_id"`
}

// CreateEnrollmentRequest enrolls a student into a program.
type CreateEnrollmentRequest struct {
	StudentID      string    `json:"student_id" validate:"required"`
	ProgramID      string    `json:"program_id" validate:"required"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	Status         string    `json:"status"`
}

// UpdateEnrollmentRequest holds a partial enrollment update.
type UpdateEnrollmentRequest struct {
	EnrollmentDate *time.Time `json:"enrollment_date"`
	Status         *string    `json:"status"`
}

// StudentService handles student and program-enrollment use-cases.
type StudentService struct {
	store     studentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(store studentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: store, validator: validate, logger: logger}
}

// List returns students with pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	all := s.store.ListStudents(ctx, filter)
	page, size := normalizePage(filter.Page, filter.PageSize)
	return paginate(all, page, size), &models.Pagination{Page: page, PageSize: size, TotalCount: len(all)}, nil
}

func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	return s.store.GetStudent(ctx, id)
}

func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	return s.store.CreateStudent(ctx, models.Student{
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		DepartmentID:  req.DepartmentID,
		UserID:        req.UserID,
	})
}

func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.StudentDetail, error) {
	return s.store.UpdateStudent(ctx, id, models.StudentPatch{
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		DepartmentID:  req.DepartmentID,
		UserID:        req.UserID,
	})
}

func (s *StudentService) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteStudent(ctx, id)
}

// ListEnrollments returns program enrollments filtered by student and/or
// program.
func (s *StudentService) ListEnrollments(ctx context.Context, studentID, programID string) []models.ProgramEnrollmentDetail {
	return s.store.ListEnrollments(ctx, studentID, programID)
}

func (s *StudentService) CreateEnrollment(ctx context.Context, req CreateEnrollmentRequest) (*models.ProgramEnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	status := models.EnrollmentStatus(req.Status)
	if req.Status != "" && !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown enrollment status")
	}
	return s.store.CreateEnrollment(ctx, models.ProgramEnrollment{
		StudentID:      req.StudentID,
		ProgramID:      req.ProgramID,
		EnrollmentDate: req.EnrollmentDate,
		Status:         status,
	})
}

func (s *StudentService) UpdateEnrollment(ctx context.Context, id string, req UpdateEnrollmentRequest) (*models.ProgramEnrollmentDetail, error) {
	patch := models.ProgramEnrollmentPatch{EnrollmentDate: req.EnrollmentDate}
	if req.Status != nil {
		status := models.EnrollmentStatus(*req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown enrollment status")
		}
		patch.Status = &status
	}
	return s.store.UpdateEnrollment(ctx, id, patch)
}

func (s *StudentService) DeleteEnrollment(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteEnrollment(ctx, id)
}
