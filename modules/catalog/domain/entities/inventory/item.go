package inventory

import (
	"context"

	"github.com/campuskit/campuskit/pkg/serrors"
)

var ErrNotFound = serrors.NewError("ITEM_NOT_FOUND", "inventory item not found", "")

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusInUse       Status = "IN_USE"
	StatusMaintenance Status = "MAINTENANCE"
	StatusLost        Status = "LOST"
)

// Item covers both returnable equipment (tracked singly) and consumable
// supplies (tracked by quantity).
type Item struct {
	id         string
	name       string
	category   string
	status     Status
	quantity   int
	returnable bool
}

func Hydrate(id, name, category string, status Status, quantity int, returnable bool) Item {
	return Item{
		id:         id,
		name:       name,
		category:   category,
		status:     status,
		quantity:   quantity,
		returnable: returnable,
	}
}

func (i Item) ID() string       { return i.id }
func (i Item) Name() string     { return i.name }
func (i Item) Category() string { return i.category }
func (i Item) Status() Status   { return i.status }
func (i Item) Quantity() int    { return i.quantity }
func (i Item) Returnable() bool { return i.returnable }

type Repository interface {
	List(ctx context.Context, returnableOnly bool) ([]Item, error)
	GetByID(ctx context.Context, id string) (Item, error)
}
