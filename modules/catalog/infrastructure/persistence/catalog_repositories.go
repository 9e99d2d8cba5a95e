package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/campuskit/campuskit/modules/catalog/domain/entities/inventory"
	"github.com/campuskit/campuskit/modules/catalog/domain/entities/vehicle"
	"github.com/campuskit/campuskit/modules/catalog/domain/entities/venue"
	"github.com/campuskit/campuskit/pkg/composables"
)

type VenueRepository struct{}

func NewVenueRepository() venue.Repository {
	return &VenueRepository{}
}

func (r *VenueRepository) List(ctx context.Context, params *venue.FindParams) ([]venue.Venue, error) {
	if params == nil {
		params = &venue.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := "SELECT id, name, type, capacity, status, department_id FROM venues"
	var args []any
	var where []string
	if params.DepartmentID != "" {
		args = append(args, params.DepartmentID)
		where = append(where, "department_id = $1")
	}
	if params.Status != "" {
		args = append(args, string(params.Status))
		if len(args) == 1 {
			where = append(where, "status = $1")
		} else {
			where = append(where, "status = $2")
		}
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY name"

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "list venues")
	}
	defer rows.Close()

	var out []venue.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, gerrors.Wrap(err, "scan venue")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VenueRepository) GetByID(ctx context.Context, id string) (venue.Venue, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return venue.Venue{}, err
	}

	v, err := scanVenue(tx.QueryRow(ctx,
		"SELECT id, name, type, capacity, status, department_id FROM venues WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return venue.Venue{}, venue.ErrNotFound
		}
		return venue.Venue{}, gerrors.Wrap(err, "get venue")
	}
	return v, nil
}

func scanVenue(row pgx.Row) (venue.Venue, error) {
	var id, name, typ, status, departmentID string
	var capacity int
	if err := row.Scan(&id, &name, &typ, &capacity, &status, &departmentID); err != nil {
		return venue.Venue{}, err
	}
	return venue.Hydrate(id, name, typ, capacity, venue.Status(status), departmentID), nil
}

type VehicleRepository struct{}

func NewVehicleRepository() vehicle.Repository {
	return &VehicleRepository{}
}

func (r *VehicleRepository) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, "SELECT id, name, plate, capacity, status FROM vehicles ORDER BY name")
	if err != nil {
		return nil, gerrors.Wrap(err, "list vehicles")
	}
	defer rows.Close()

	var out []vehicle.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, gerrors.Wrap(err, "scan vehicle")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VehicleRepository) GetByID(ctx context.Context, id string) (vehicle.Vehicle, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return vehicle.Vehicle{}, err
	}

	v, err := scanVehicle(tx.QueryRow(ctx,
		"SELECT id, name, plate, capacity, status FROM vehicles WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vehicle.Vehicle{}, vehicle.ErrNotFound
		}
		return vehicle.Vehicle{}, gerrors.Wrap(err, "get vehicle")
	}
	return v, nil
}

func scanVehicle(row pgx.Row) (vehicle.Vehicle, error) {
	var id, name, plate, status string
	var capacity int
	if err := row.Scan(&id, &name, &plate, &capacity, &status); err != nil {
		return vehicle.Vehicle{}, err
	}
	return vehicle.Hydrate(id, name, plate, capacity, vehicle.Status(status)), nil
}

type InventoryRepository struct{}

func NewInventoryRepository() inventory.Repository {
	return &InventoryRepository{}
}

func (r *InventoryRepository) List(ctx context.Context, returnableOnly bool) ([]inventory.Item, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := "SELECT id, name, category, status, quantity, returnable FROM inventory_items"
	if returnableOnly {
		query += " WHERE returnable"
	}
	query += " ORDER BY name"

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, gerrors.Wrap(err, "list inventory items")
	}
	defer rows.Close()

	var out []inventory.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, gerrors.Wrap(err, "scan inventory item")
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *InventoryRepository) GetByID(ctx context.Context, id string) (inventory.Item, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return inventory.Item{}, err
	}

	item, err := scanItem(tx.QueryRow(ctx,
		"SELECT id, name, category, status, quantity, returnable FROM inventory_items WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inventory.Item{}, inventory.ErrNotFound
		}
		return inventory.Item{}, gerrors.Wrap(err, "get inventory item")
	}
	return item, nil
}

func scanItem(row pgx.Row) (inventory.Item, error) {
	var id, name, category, status string
	var quantity int
	var returnable bool
	if err := row.Scan(&id, &name, &category, &status, &quantity, &returnable); err != nil {
		return inventory.Item{}, err
	}
	return inventory.Hydrate(id, name, category, inventory.Status(status), quantity, returnable), nil
}
