package services

import (
	"context"

	"github.com/campuskit/campuskit/modules/core/domain/entities/role"
)

type RoleService struct {
	repo role.Repository
}

func NewRoleService(repo role.Repository) *RoleService {
	return &RoleService{repo: repo}
}

func (s *RoleService) List(ctx context.Context) ([]role.Role, error) {
	return s.repo.List(ctx)
}

func (s *RoleService) GetByName(ctx context.Context, name string) (role.Role, error) {
	return s.repo.GetByName(ctx, name)
}
