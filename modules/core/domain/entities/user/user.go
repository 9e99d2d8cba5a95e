package user

import (
	"context"
	"strings"
	"time"

	"github.com/campuskit/campuskit/pkg/serrors"
)

var (
	ErrNotFound   = serrors.NewError("USER_NOT_FOUND", "user not found", "")
	ErrEmailTaken = serrors.NewError("USER_EMAIL_TAKEN", "email already registered", "")
)

type User struct {
	id           string
	name         string
	email        string
	role         string
	departmentID string
	createdAt    time.Time
	updatedAt    time.Time
}

func New(id, name, email, role, departmentID string) User {
	return User{
		id:           id,
		name:         strings.TrimSpace(name),
		email:        strings.ToLower(strings.TrimSpace(email)),
		role:         role,
		departmentID: departmentID,
	}
}

func Hydrate(id, name, email, role, departmentID string, createdAt, updatedAt time.Time) User {
	return User{
		id:           id,
		name:         name,
		email:        email,
		role:         role,
		departmentID: departmentID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u User) ID() string           { return u.id }
func (u User) Name() string         { return u.name }
func (u User) Email() string        { return u.email }
func (u User) Role() string         { return u.role }
func (u User) DepartmentID() string { return u.departmentID }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }
func (u User) IsZero() bool         { return u.id == "" }

type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, limit, offset int) ([]User, int64, error)
	Create(ctx context.Context, u User) (User, error)
}
