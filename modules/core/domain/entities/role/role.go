package role

import (
	"context"

	"github.com/campuskit/campuskit/pkg/serrors"
)

var ErrNotFound = serrors.NewError("ROLE_NOT_FOUND", "role not found", "")

type Role struct {
	id          string
	name        string
	description string
}

func Hydrate(id, name, description string) Role {
	return Role{id: id, name: name, description: description}
}

func (r Role) ID() string          { return r.id }
func (r Role) Name() string        { return r.name }
func (r Role) Description() string { return r.description }

type Repository interface {
	List(ctx context.Context) ([]Role, error)
	GetByName(ctx context.Context, name string) (Role, error)
}
