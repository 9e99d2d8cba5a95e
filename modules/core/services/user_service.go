package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/campuskit/campuskit/modules/core/domain/entities/user"
	"github.com/campuskit/campuskit/pkg/constants"
	"github.com/campuskit/campuskit/pkg/serrors"
)

type CreateUserDTO struct {
	Name         string `json:"name" validate:"required,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Role         string `json:"role" validate:"required,oneof=USER STAFF APPROVER ADMIN"`
	DepartmentID string `json:"department_id" validate:"required"`
}

func (d *CreateUserDTO) Ok() (map[string]string, bool) {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Role = strings.ToUpper(strings.TrimSpace(d.Role))
	if err := constants.Validate.Struct(d); err != nil {
		return serrors.ProcessValidatorErrors(err.(validator.ValidationErrors)).Messages(), false
	}
	return nil, true
}

type UserService struct {
	repo user.Repository
}

func NewUserService(repo user.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id string) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]user.User, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *UserService) Create(ctx context.Context, dto *CreateUserDTO) (user.User, error) {
	entity := user.New(uuid.NewString(), dto.Name, dto.Email, dto.Role, dto.DepartmentID)
	return s.repo.Create(ctx, entity)
}
