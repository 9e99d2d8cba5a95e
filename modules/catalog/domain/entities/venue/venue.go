package venue

import (
	"context"

	"github.com/campuskit/campuskit/pkg/serrors"
)

var ErrNotFound = serrors.NewError("VENUE_NOT_FOUND", "venue not found", "")

type Status string

const (
	StatusAvailable        Status = "AVAILABLE"
	StatusInUse            Status = "IN_USE"
	StatusUnderMaintenance Status = "UNDER_MAINTENANCE"
	StatusReserved         Status = "RESERVED"
)

type Venue struct {
	id           string
	name         string
	typ          string
	capacity     int
	status       Status
	departmentID string
}

func Hydrate(id, name, typ string, capacity int, status Status, departmentID string) Venue {
	return Venue{
		id:           id,
		name:         name,
		typ:          typ,
		capacity:     capacity,
		status:       status,
		departmentID: departmentID,
	}
}

func (v Venue) ID() string           { return v.id }
func (v Venue) Name() string         { return v.name }
func (v Venue) Type() string         { return v.typ }
func (v Venue) Capacity() int        { return v.capacity }
func (v Venue) Status() Status       { return v.status }
func (v Venue) DepartmentID() string { return v.departmentID }

type FindParams struct {
	DepartmentID string
	Status       Status
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]Venue, error)
	GetByID(ctx context.Context, id string) (Venue, error)
}
