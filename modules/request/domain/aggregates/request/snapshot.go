package request

import (
	"encoding/json"
	"time"
)

// Snapshot is the full serialized state of a request at one point in time.
// Audit entries store a before and an after snapshot; nothing else is ever
// good enough to reconstruct what a mutation touched.
type Snapshot struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Type         Type       `json:"type"`
	Priority     Priority   `json:"priority"`
	Status       Status     `json:"status"`
	RequesterID  string     `json:"requester_id"`
	DepartmentID string     `json:"department_id"`
	CancelReason string     `json:"cancel_reason,omitempty"`
	Detail       Detail     `json:"detail"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func (r Request) Snapshot() Snapshot {
	return Snapshot{
		ID:           r.id,
		Title:        r.title,
		Description:  r.description,
		Type:         r.typ,
		Priority:     r.priority,
		Status:       r.status,
		RequesterID:  r.requesterID,
		DepartmentID: r.departmentID,
		CancelReason: r.cancelReason,
		Detail:       r.detail,
		CreatedAt:    r.createdAt,
		UpdatedAt:    r.updatedAt,
		CompletedAt:  r.completedAt,
	}
}

// MarshalSnapshot encodes the request state for audit storage.
func (r Request) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(r.Snapshot())
}
