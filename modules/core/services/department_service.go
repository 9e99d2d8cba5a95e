package services

import (
	"context"
	"errors"

	"github.com/campuskit/campuskit/modules/core/domain/entities/department"
)

type DepartmentService struct {
	repo department.Repository
}

func NewDepartmentService(repo department.Repository) *DepartmentService {
	return &DepartmentService{repo: repo}
}

func (s *DepartmentService) List(ctx context.Context, includeArchived bool) ([]department.Department, error) {
	return s.repo.List(ctx, includeArchived)
}

func (s *DepartmentService) GetByID(ctx context.Context, id string) (department.Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DepartmentService) Create(ctx context.Context, d department.Department) (department.Department, error) {
	return s.repo.Create(ctx, d)
}

// Exists reports whether the department can receive new requests. Archived
// departments count as absent.
func (s *DepartmentService) Exists(ctx context.Context, id string) (bool, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, department.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return !d.Archived(), nil
}
