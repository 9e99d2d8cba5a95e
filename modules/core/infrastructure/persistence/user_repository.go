package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campuskit/campuskit/modules/core/domain/entities/user"
	"github.com/campuskit/campuskit/pkg/composables"
	"github.com/campuskit/campuskit/pkg/repo"
)

const userColumns = "id, name, email, role, department_id, created_at, updated_at"

type UserRepository struct{}

func NewUserRepository() user.Repository {
	return &UserRepository{}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}

	row, err := scanUser(tx.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, gerrors.Wrap(err, "get user")
	}
	return row, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]user.User, int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := repo.Join(
		"SELECT "+userColumns+" FROM users",
		repo.OrderBy("name", "ASC"),
		repo.FormatLimitOffset(limit, offset),
	)
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "list users")
	}
	defer rows.Close()

	var out []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, gerrors.Wrap(err, "scan user")
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "count users")
	}
	return out, total, nil
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}

	query := `INSERT INTO users (id, name, email, role, department_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + userColumns

	created, err := scanUser(tx.QueryRow(ctx, query, u.ID(), u.Name(), u.Email(), u.Role(), u.DepartmentID()))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, gerrors.Wrap(err, "create user")
	}
	return created, nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var id, name, email, role, departmentID string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &name, &email, &role, &departmentID, &createdAt, &updatedAt); err != nil {
		return user.User{}, err
	}
	return user.Hydrate(id, name, email, role, departmentID, createdAt, updatedAt), nil
}
