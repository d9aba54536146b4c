package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

type orgStore interface {
	ListInstitutions(ctx context.Context) []models.Institution
	GetInstitution(ctx context.Context, id string) (*models.Institution, error)
	CreateInstitution(ctx context.Context, in models.Institution) (*models.Institution, error)
	UpdateInstitution(ctx context.Context, id string, patch models.InstitutionPatch) (*models.Institution, error)
	DeleteInstitution(ctx context.Context, id string) (*models.DeleteAck, error)

	ListFaculties(ctx context.Context, institutionID string) []models.FacultyDetail
	GetFaculty(ctx context.Context, id string) (*models.FacultyDetail, error)
	CreateFaculty(ctx context.Context, in models.Faculty) (*models.FacultyDetail, error)
	UpdateFaculty(ctx context.Context, id string, patch models.FacultyPatch) (*models.FacultyDetail, error)
	DeleteFaculty(ctx context.Context, id string) (*models.DeleteAck, error)

	ListDepartments(ctx context.Context, facultyID string) []models.DepartmentDetail
	GetDepartment(ctx context.Context, id string) (*models.DepartmentDetail, error)
	CreateDepartment(ctx context.Context, in models.Department) (*models.DepartmentDetail, error)
	UpdateDepartment(ctx context.Context, id string, patch models.DepartmentPatch) (*models.DepartmentDetail, error)
	DeleteDepartment(ctx context.Context, id string) (*models.DeleteAck, error)

	ListPrograms(ctx context.Context, departmentID string) []models.ProgramDetail
	GetProgram(ctx context.Context, id string) (*models.ProgramDetail, error)
	CreateProgram(ctx context.Context, in models.Program) (*models.ProgramDetail, error)
	UpdateProgram(ctx context.Context, id string, patch models.ProgramPatch) (*models.ProgramDetail, error)
	DeleteProgram(ctx context.Context, id string) (*models.DeleteAck, error)

	ListProgramCourses(ctx context.Context, programID string) []models.ProgramCourseDetail
	CreateProgramCourse(ctx context.Context, in models.ProgramCourse) (*models.ProgramCourseDetail, error)
	UpdateProgramCourse(ctx context.Context, id string) error
	DeleteProgramCourse(ctx context.Context, id string) (*models.DeleteAck, error)
}

// CreateInstitutionRequest holds payload for creating institutions.
type CreateInstitutionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateInstitutionRequest holds a partial institution update.
type UpdateInstitutionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CreateFacultyRequest struct {
	InstitutionID string `json:"institution_id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
}

type UpdateFacultyRequest struct {
	InstitutionID *string `json:"institution_id"`
	Name          *string `json:"name"`
	Description   *string `json:"description"`
}

type CreateDepartmentRequest struct {
	FacultyID   string `json:"faculty_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	FacultyID   *string `json:"faculty_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CreateProgramRequest struct {
	DepartmentID string `json:"department_id" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	ProgramLevel string `json:"program_level" validate:"required"`
}

type UpdateProgramRequest struct {
	DepartmentID *string `json:"department_id"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	ProgramLevel *string `json:"program_level"`
}

type CreateProgramCourseRequest struct {
	ProgramID string `json:"program_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}

// OrgService handles the institutional hierarchy use-cases.
type OrgService struct {
	store     orgStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOrgService constructs the org service.
func NewOrgService(store orgStore, validate *validator.Validate, logger *zap.Logger) *OrgService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrgService{store: store, validator: validate, logger: logger}
}

func (s *OrgService) ListInstitutions(ctx context.Context) []models.Institution {
	return s.store.ListInstitutions(ctx)
}

func (s *OrgService) GetInstitution(ctx context.Context, id string) (*models.Institution, error) {
	return s.store.GetInstitution(ctx, id)
}

func (s *OrgService) CreateInstitution(ctx context.Context, req CreateInstitutionRequest) (*models.Institution, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid institution payload")
	}
	return s.store.CreateInstitution(ctx, models.Institution{Name: req.Name, Description: req.Description})
}

func (s *OrgService) UpdateInstitution(ctx context.Context, id string, req UpdateInstitutionRequest) (*models.Institution, error) {
	return s.store.UpdateInstitution(ctx, id, models.InstitutionPatch{Name: req.Name, Description: req.Description})
}

func (s *OrgService) DeleteInstitution(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteInstitution(ctx, id)
}

func (s *OrgService) ListFaculties(ctx context.Context, institutionID string) []models.FacultyDetail {
	return s.store.ListFaculties(ctx, institutionID)
}

func (s *OrgService) GetFaculty(ctx context.Context, id string) (*models.FacultyDetail, error) {
	return s.store.GetFaculty(ctx, id)
}

func (s *OrgService) CreateFaculty(ctx context.Context, req CreateFacultyRequest) (*models.FacultyDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}
	return s.store.CreateFaculty(ctx, models.Faculty{
		InstitutionID: req.InstitutionID,
		Name:          req.Name,
		Description:   req.Description,
	})
}

func (s *OrgService) UpdateFaculty(ctx context.Context, id string, req UpdateFacultyRequest) (*models.FacultyDetail, error) {
	return s.store.UpdateFaculty(ctx, id, models.FacultyPatch{
		InstitutionID: req.InstitutionID,
		Name:          req.Name,
		Description:   req.Description,
	})
}

func (s *OrgService) DeleteFaculty(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteFaculty(ctx, id)
}

func (s *OrgService) ListDepartments(ctx context.Context, facultyID string) []models.DepartmentDetail {
	return s.store.ListDepartments(ctx, facultyID)
}

func (s *OrgService) GetDepartment(ctx context.Context, id string) (*models.DepartmentDetail, error) {
	return s.store.GetDepartment(ctx, id)
}

func (s *OrgService) CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*models.DepartmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}
	return s.store.CreateDepartment(ctx, models.Department{
		FacultyID:   req.FacultyID,
		Name:        req.Name,
		Description: req.Description,
	})
}

func (s *OrgService) UpdateDepartment(ctx context.Context, id string, req UpdateDepartmentRequest) (*models.DepartmentDetail, error) {
	return s.store.UpdateDepartment(ctx, id, models.DepartmentPatch{
		FacultyID:   req.FacultyID,
		Name:        req.Name,
		Description: req.Description,
	})
}

func (s *OrgService) DeleteDepartment(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteDepartment(ctx, id)
}

func (s *OrgService) ListPrograms(ctx context.Context, departmentID string) []models.ProgramDetail {
	return s.store.ListPrograms(ctx, departmentID)
}

func (s *OrgService) GetProgram(ctx context.Context, id string) (*models.ProgramDetail, error) {
	return s.store.GetProgram(ctx, id)
}

func (s *OrgService) CreateProgram(ctx context.Context, req CreateProgramRequest) (*models.ProgramDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid program payload")
	}
	level := models.ProgramLevel(req.ProgramLevel)
	if !level.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown program level")
	}
	return s.store.CreateProgram(ctx, models.Program{
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Description:  req.Description,
		ProgramLevel: level,
	})
}

func (s *OrgService) UpdateProgram(ctx context.Context, id string, req UpdateProgramRequest) (*models.ProgramDetail, error) {
	patch := models.ProgramPatch{
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Description:  req.Description,
	}
	if req.ProgramLevel != nil {
		level := models.ProgramLevel(*req.ProgramLevel)
		if !level.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown program level")
		}
		patch.ProgramLevel = &level
	}
	return s.store.UpdateProgram(ctx, id, patch)
}

func (s *OrgService) DeleteProgram(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteProgram(ctx, id)
}

func (s *OrgService) ListProgramCourses(ctx context.Context, programID string) []models.ProgramCourseDetail {
	return s.store.ListProgramCourses(ctx, programID)
}

func (s *OrgService) CreateProgramCourse(ctx context.Context, req CreateProgramCourseRequest) (*models.ProgramCourseDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid program course payload")
	}
	return s.store.CreateProgramCourse(ctx, models.ProgramCourse{ProgramID: req.ProgramID, CourseID: req.CourseID})
}

// UpdateProgramCourse is not supported; assignments are replaced by delete
// and re-create.
func (s *OrgService) UpdateProgramCourse(ctx context.Context, id string) error {
	return s.store.UpdateProgramCourse(ctx, id)
}

func (s *OrgService) DeleteProgramCourse(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteProgramCourse(ctx, id)
}
