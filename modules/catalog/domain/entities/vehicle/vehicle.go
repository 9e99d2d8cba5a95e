package vehicle

import (
	"context"

	"github.com/campuskit/campuskit/pkg/serrors"
)

var ErrNotFound = serrors.NewError("VEHICLE_NOT_FOUND", "vehicle not found", "")

type Status string

const (
	StatusAvailable        Status = "AVAILABLE"
	StatusInUse            Status = "IN_USE"
	StatusUnderMaintenance Status = "UNDER_MAINTENANCE"
)

type Vehicle struct {
	id       string
	name     string
	plate    string
	capacity int
	status   Status
}

func Hydrate(id, name, plate string, capacity int, status Status) Vehicle {
	return Vehicle{id: id, name: name, plate: plate, capacity: capacity, status: status}
}

func (v Vehicle) ID() string     { return v.id }
func (v Vehicle) Name() string   { return v.name }
func (v Vehicle) Plate() string  { return v.plate }
func (v Vehicle) Capacity() int  { return v.capacity }
func (v Vehicle) Status() Status { return v.status }

type Repository interface {
	List(ctx context.Context) ([]Vehicle, error)
	GetByID(ctx context.Context, id string) (Vehicle, error)
}
