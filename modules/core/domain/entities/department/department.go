package department

import (
	"context"
	"strings"
	"time"

	"github.com/campuskit/campuskit/pkg/serrors"
)

var ErrNotFound = serrors.NewError("DEPARTMENT_NOT_FOUND", "department not found", "")

// Department is an organizational unit that can receive requests. The
// accepts flags control which request kinds it handles.
type Department struct {
	id               string
	name             string
	typ              string
	acceptsJobs      bool
	acceptsTransport bool
	archived         bool
	createdAt        time.Time
}

func New(id, name, typ string, acceptsJobs, acceptsTransport bool) Department {
	return Department{
		id:               id,
		name:             strings.TrimSpace(name),
		typ:              typ,
		acceptsJobs:      acceptsJobs,
		acceptsTransport: acceptsTransport,
	}
}

func Hydrate(id, name, typ string, acceptsJobs, acceptsTransport, archived bool, createdAt time.Time) Department {
	return Department{
		id:               id,
		name:             name,
		typ:              typ,
		acceptsJobs:      acceptsJobs,
		acceptsTransport: acceptsTransport,
		archived:         archived,
		createdAt:        createdAt,
	}
}

func (d Department) ID() string             { return d.id }
func (d Department) Name() string           { return d.name }
func (d Department) Type() string           { return d.typ }
func (d Department) AcceptsJobs() bool      { return d.acceptsJobs }
func (d Department) AcceptsTransport() bool { return d.acceptsTransport }
func (d Department) Archived() bool         { return d.archived }
func (d Department) CreatedAt() time.Time   { return d.createdAt }

type Repository interface {
	List(ctx context.Context, includeArchived bool) ([]Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	Create(ctx context.Context, d Department) (Department, error)
}
