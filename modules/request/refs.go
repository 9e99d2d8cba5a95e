package request

import (
	"context"

	gerrors "github.com/go-faster/errors"

	catalogservices "github.com/campuskit/campuskit/modules/catalog/services"
	coreservices "github.com/campuskit/campuskit/modules/core/services"
	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
)

// referenceChecker backs the lifecycle's pre-write dependency checks with
// the core and catalog read services.
type referenceChecker struct {
	departments *coreservices.DepartmentService
	venues      *catalogservices.VenueService
	vehicles    *catalogservices.VehicleService
	inventory   *catalogservices.InventoryService
}

func (c *referenceChecker) CheckDepartment(ctx context.Context, id string) error {
	ok, err := c.departments.Exists(ctx, id)
	return dependencyResult(ok, err, "department", id)
}

func (c *referenceChecker) CheckVenue(ctx context.Context, id string) error {
	ok, err := c.venues.Exists(ctx, id)
	return dependencyResult(ok, err, "venue", id)
}

func (c *referenceChecker) CheckVehicle(ctx context.Context, id string) error {
	ok, err := c.vehicles.Exists(ctx, id)
	return dependencyResult(ok, err, "vehicle", id)
}

func (c *referenceChecker) CheckItem(ctx context.Context, id string) error {
	ok, err := c.inventory.Exists(ctx, id)
	return dependencyResult(ok, err, "item", id)
}

func dependencyResult(ok bool, err error, kind, id string) error {
	if err != nil {
		return gerrors.Wrapf(err, "check %s %s", kind, id)
	}
	if !ok {
		return gerrors.Wrapf(request.ErrDependency, "%s %s", kind, id)
	}
	return nil
}
