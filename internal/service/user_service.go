package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

type userStore interface {
	ListUsers(ctx context.Context, filter models.UserFilter) []models.UserDetail
	GetUser(ctx context.Context, id string) (*models.UserDetail, error)
	CreateUser(ctx context.Context, in models.User, roles []models.RoleType) (*models.UserDetail, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.UserDetail, error)
	AssignRole(ctx context.Context, userID string, role models.RoleType) (*models.UserRoleAssignment, error)
	RevokeRole(ctx context.Context, assignmentID string) (*models.DeleteAck, error)
	DeleteUser(ctx context.Context, id string) (*models.DeleteAck, error)
}

// CreateUserRequest holds payload for administrative user creation.
type CreateUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	FullName string   `json:"full_name" validate:"required"`
	Roles    []string `json:"roles" validate:"required,min=1"`
}

// UpdateUserRequest holds a partial user update.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Active   *bool   `json:"active"`
}

// AssignRoleRequest grants a role to a user.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UserService handles account administration use-cases.
type UserService struct {
	store     userStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs the user service.
func NewUserService(store userStore, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{store: store, validator: validate, logger: logger}
}

// List returns users with pagination metadata.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.UserDetail, *models.Pagination, error) {
	all := s.store.ListUsers(ctx, filter)
	page, size := normalizePage(filter.Page, filter.PageSize)
	return paginate(all, page, size), &models.Pagination{Page: page, PageSize: size, TotalCount: len(all)}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.UserDetail, error) {
	return s.store.GetUser(ctx, id)
}

// Create registers a user with the given roles and a bcrypt password hash.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.UserDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	roles := make([]models.RoleType, 0, len(req.Roles))
	for _, raw := range req.Roles {
		role := models.RoleType(raw)
		if !role.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role: "+raw)
		}
		roles = append(roles, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	return s.store.CreateUser(ctx, models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Active:       true,
	}, roles)
}

func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*models.UserDetail, error) {
	return s.store.UpdateUser(ctx, id, models.UserPatch{
		Email:    req.Email,
		FullName: req.FullName,
		Active:   req.Active,
	})
}

// AssignRole grants an additional role to a user.
func (s *UserService) AssignRole(ctx context.Context, userID string, req AssignRoleRequest) (*models.UserRoleAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}
	role := models.RoleType(req.Role)
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role: "+req.Role)
	}
	return s.store.AssignRole(ctx, userID, role)
}

// RevokeRole removes a role assignment.
func (s *UserService) RevokeRole(ctx context.Context, assignmentID string) (*models.DeleteAck, error) {
	return s.store.RevokeRole(ctx, assignmentID)
}

func (s *UserService) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteUser(ctx, id)
}
