package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

type employeeStore interface {
	ListEmployees(ctx context.Context, departmentID string) []models.DepartmentEmployeeDetail
	GetEmployee(ctx context.Context, id string) (*models.DepartmentEmployeeDetail, error)
	CreateEmployee(ctx context.Context, in models.DepartmentEmployee) (*models.DepartmentEmployeeDetail, error)
	UpdateEmployee(ctx context.Context, id string, patch models.EmployeePatch) (*models.DepartmentEmployeeDetail, error)
	DeleteEmployee(ctx context.Context, id string) (*models.DeleteAck, error)
}

// CreateEmployeeRequest holds payload for creating department employees.
type CreateEmployeeRequest struct {
	DepartmentID string    `json:"department_id" validate:"required"`
	UserID       string    `json:"user_id"`
	FullName     string    `json:"full_name" validate:"required"`
	Position     string    `json:"position" validate:"required"`
	HireDate     time.Time `json:"hire_date"`
}

// UpdateEmployeeRequest holds a partial employee update.
type UpdateEmployeeRequest struct {
	DepartmentID *string    `json:"department_id"`
	UserID       *string    `json:"user_id"`
	FullName     *string    `json:"full_name"`
	Position     *string    `json:"position"`
	HireDate     *time.Time `json:"hire_date"`
}

// EmployeeService handles department staff use-cases.
type EmployeeService struct {
	store     employeeStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs the employee service.
func NewEmployeeService(store employeeStore, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{store: store, validator: validate, logger: logger}
}

func (s *EmployeeService) List(ctx context.Context, departmentID string) []models.DepartmentEmployeeDetail {
	return s.store.ListEmployees(ctx, departmentID)
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*models.DepartmentEmployeeDetail, error) {
	return s.store.GetEmployee(ctx, id)
}

func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*models.DepartmentEmployeeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid employee payload")
	}
	return s.store.CreateEmployee(ctx, models.DepartmentEmployee{
		DepartmentID: req.DepartmentID,
		UserID:       req.UserID,
		FullName:     req.FullName,
		Position:     req.Position,
		HireDate:     req.HireDate,
	})
}

func (s *EmployeeService) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (*models.DepartmentEmployeeDetail, error) {
	return s.store.UpdateEmployee(ctx, id, models.EmployeePatch{
		DepartmentID: req.DepartmentID,
		UserID:       req.UserID,
		FullName:     req.FullName,
		Position:     req.Position,
		HireDate:     req.HireDate,
	})
}

func (s *EmployeeService) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteEmployee(ctx, id)
}
