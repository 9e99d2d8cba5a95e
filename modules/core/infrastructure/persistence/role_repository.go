package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/campuskit/campuskit/modules/core/domain/entities/role"
	"github.com/campuskit/campuskit/pkg/composables"
)

type RoleRepository struct{}

func NewRoleRepository() role.Repository {
	return &RoleRepository{}
}

func (r *RoleRepository) List(ctx context.Context) ([]role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, "SELECT id, name, description FROM roles ORDER BY name")
	if err != nil {
		return nil, gerrors.Wrap(err, "list roles")
	}
	defer rows.Close()

	var out []role.Role
	for rows.Next() {
		var id, name, description string
		if err := rows.Scan(&id, &name, &description); err != nil {
			return nil, gerrors.Wrap(err, "scan role")
		}
		out = append(out, role.Hydrate(id, name, description))
	}
	return out, rows.Err()
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return role.Role{}, err
	}

	var id, roleName, description string
	err = tx.QueryRow(ctx, "SELECT id, name, description FROM roles WHERE name = $1", name).
		Scan(&id, &roleName, &description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrNotFound
		}
		return role.Role{}, gerrors.Wrap(err, "get role")
	}
	return role.Hydrate(id, roleName, description), nil
}
