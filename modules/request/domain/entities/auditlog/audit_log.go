// Package auditlog holds the append-only request history. Entries carry full
// before and after snapshots; they are written in the same transaction as the
// mutation they describe and never updated or deleted.
package auditlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/pkg/serrors"
)

var ErrNotFound = serrors.NewError("AUDIT_NOT_FOUND", "audit entry not found", "")

type Entry struct {
	id         int64
	requestID  string
	changeType request.ChangeType
	actorID    string
	oldValue   json.RawMessage
	newValue   json.RawMessage
	createdAt  time.Time
}

// New builds an unsaved entry. oldValue is nil for creation records.
func New(requestID string, changeType request.ChangeType, actorID string, oldValue, newValue json.RawMessage) Entry {
	return Entry{
		requestID:  requestID,
		changeType: changeType,
		actorID:    actorID,
		oldValue:   oldValue,
		newValue:   newValue,
	}
}

func Hydrate(
	id int64,
	requestID string,
	changeType request.ChangeType,
	actorID string,
	oldValue, newValue json.RawMessage,
	createdAt time.Time,
) Entry {
	return Entry{
		id:         id,
		requestID:  requestID,
		changeType: changeType,
		actorID:    actorID,
		oldValue:   oldValue,
		newValue:   newValue,
		createdAt:  createdAt,
	}
}

func (e Entry) ID() int64                      { return e.id }
func (e Entry) RequestID() string              { return e.requestID }
func (e Entry) ChangeType() request.ChangeType { return e.changeType }
func (e Entry) ActorID() string                { return e.actorID }
func (e Entry) OldValue() json.RawMessage      { return e.oldValue }
func (e Entry) NewValue() json.RawMessage      { return e.newValue }
func (e Entry) CreatedAt() time.Time           { return e.createdAt }

// Repository is append-only. Create requires an open transaction in the
// context; the persistence layer fails with ErrNoTx otherwise, so an audit
// row can never outlive a rolled-back mutation or commit on its own.
type Repository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	ListByRequestID(ctx context.Context, requestID string) ([]Entry, error)
}
