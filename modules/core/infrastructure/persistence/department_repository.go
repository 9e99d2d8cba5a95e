package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/campuskit/campuskit/modules/core/domain/entities/department"
	"github.com/campuskit/campuskit/pkg/composables"
)

const departmentColumns = "id, name, type, accepts_jobs, accepts_transport, archived, created_at"

type DepartmentRepository struct{}

func NewDepartmentRepository() department.Repository {
	return &DepartmentRepository{}
}

func (r *DepartmentRepository) List(ctx context.Context, includeArchived bool) ([]department.Department, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + departmentColumns + " FROM departments"
	if !includeArchived {
		query += " WHERE NOT archived"
	}
	query += " ORDER BY name"

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, gerrors.Wrap(err, "list departments")
	}
	defer rows.Close()

	var out []department.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, gerrors.Wrap(err, "scan department")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return department.Department{}, err
	}

	d, err := scanDepartment(tx.QueryRow(ctx, "SELECT "+departmentColumns+" FROM departments WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrNotFound
		}
		return department.Department{}, gerrors.Wrap(err, "get department")
	}
	return d, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, d department.Department) (department.Department, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return department.Department{}, err
	}

	query := `INSERT INTO departments (id, name, type, accepts_jobs, accepts_transport)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + departmentColumns

	created, err := scanDepartment(tx.QueryRow(ctx, query,
		d.ID(), d.Name(), d.Type(), d.AcceptsJobs(), d.AcceptsTransport(),
	))
	if err != nil {
		return department.Department{}, gerrors.Wrap(err, "create department")
	}
	return created, nil
}

func scanDepartment(row pgx.Row) (department.Department, error) {
	var id, name, typ string
	var acceptsJobs, acceptsTransport, archived bool
	var createdAt time.Time
	if err := row.Scan(&id, &name, &typ, &acceptsJobs, &acceptsTransport, &archived, &createdAt); err != nil {
		return department.Department{}, err
	}
	return department.Hydrate(id, name, typ, acceptsJobs, acceptsTransport, archived, createdAt), nil
}
