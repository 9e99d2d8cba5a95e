package request

import (
	"strings"
	"time"
)

// Type is the kind of resource a request asks for. Exactly one typed detail
// accompanies the envelope, matching the type.
type Type string

const (
	TypeJob        Type = "JOB"
	TypeVenue      Type = "VENUE"
	TypeTransport  Type = "TRANSPORT"
	TypeReturnable Type = "RETURNABLE"
	TypeSupply     Type = "SUPPLY"
)

func (t Type) Valid() bool {
	switch t {
	case TypeJob, TypeVenue, TypeTransport, TypeReturnable, TypeSupply:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Request is the envelope shared by every request kind. The typed detail
// lives alongside it and is written in the same transaction.
type Request struct {
	id           string
	title        string
	description  string
	typ          Type
	priority     Priority
	status       Status
	requesterID  string
	departmentID string
	cancelReason string
	detail       Detail
	createdAt    time.Time
	updatedAt    time.Time
	completedAt  *time.Time
}

func New(typ Type, priority Priority, title, description, requesterID, departmentID string, detail Detail) Request {
	return Request{
		id:           NewID(PrefixRequest),
		title:        strings.TrimSpace(title),
		description:  strings.TrimSpace(description),
		typ:          typ,
		priority:     priority,
		status:       StatusPending,
		requesterID:  requesterID,
		departmentID: departmentID,
		detail:       detail,
	}
}

func Hydrate(
	id string,
	title string,
	description string,
	typ Type,
	priority Priority,
	status Status,
	requesterID string,
	departmentID string,
	cancelReason string,
	detail Detail,
	createdAt time.Time,
	updatedAt time.Time,
	completedAt *time.Time,
) Request {
	return Request{
		id:           id,
		title:        title,
		description:  description,
		typ:          typ,
		priority:     priority,
		status:       status,
		requesterID:  requesterID,
		departmentID: departmentID,
		cancelReason: cancelReason,
		detail:       detail,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		completedAt:  completedAt,
	}
}

func (r Request) ID() string            { return r.id }
func (r Request) Title() string         { return r.title }
func (r Request) Description() string   { return r.description }
func (r Request) Type() Type            { return r.typ }
func (r Request) Priority() Priority    { return r.priority }
func (r Request) Status() Status        { return r.status }
func (r Request) RequesterID() string   { return r.requesterID }
func (r Request) DepartmentID() string  { return r.departmentID }
func (r Request) CancelReason() string  { return r.cancelReason }
func (r Request) Detail() Detail        { return r.detail }
func (r Request) CreatedAt() time.Time  { return r.createdAt }
func (r Request) UpdatedAt() time.Time  { return r.updatedAt }
func (r Request) CompletedAt() *time.Time {
	return r.completedAt
}
func (r Request) IsZero() bool { return r.id == "" }

// Transition moves the request to the target status, enforcing the edge
// table. The returned change type is derived from the (old, new) pair so the
// audit trail cannot be mislabelled by callers.
func (r Request) Transition(to Status, reason string) (Request, ChangeType, error) {
	if !CanTransition(r.status, to) {
		return r, "", ErrInvalidTransition
	}
	out := r
	out.status = to
	switch to {
	case StatusCancelled:
		out.cancelReason = strings.TrimSpace(reason)
	case StatusCompleted:
		now := time.Now()
		out.completedAt = &now
	}
	return out, DeriveChangeType(r.status, to), nil
}

// WithTitle replaces the generated display title.
func (r Request) WithTitle(title string) Request {
	out := r
	out.title = strings.TrimSpace(title)
	return out
}

// WithDetail replaces the typed detail. The detail kind must already match
// the envelope type; repositories reject mismatches.
func (r Request) WithDetail(detail Detail) Request {
	out := r
	out.detail = detail
	return out
}
