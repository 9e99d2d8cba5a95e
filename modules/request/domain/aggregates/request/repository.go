package request

import (
	"context"
	"time"
)

type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
	SortPriority  SortField = "priority"
	SortStatus    SortField = "status"
)

type FindParams struct {
	Status       Status
	Type         Type
	RequesterID  string
	DepartmentID string
	AssigneeID   string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	SortBy       SortField
	Ascending    bool
	Limit        int
	Offset       int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Request, int64, error)
	GetByID(ctx context.Context, id string) (Request, error)
	Create(ctx context.Context, r Request) (Request, error)
	Update(ctx context.Context, r Request) (Request, error)
}
