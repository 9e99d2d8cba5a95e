package viewmodels

import (
	"encoding/json"
	"time"
)

type Request struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Type         string          `json:"type"`
	Priority     string          `json:"priority"`
	Status       string          `json:"status"`
	RequesterID  string          `json:"requester_id"`
	DepartmentID string          `json:"department_id"`
	CancelReason string          `json:"cancel_reason,omitempty"`
	Detail       json.RawMessage `json:"detail"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

type RequestList struct {
	Items []Request `json:"items"`
	Total int64     `json:"total"`
}

// AuditEntry is one row of the request history. ChangedPaths lists the JSON
// pointer paths that differ between the before and after snapshots.
type AuditEntry struct {
	ID           int64           `json:"id"`
	RequestID    string          `json:"request_id"`
	ChangeType   string          `json:"change_type"`
	ActorID      string          `json:"actor_id"`
	OldValue     json.RawMessage `json:"old_value,omitempty"`
	NewValue     json.RawMessage `json:"new_value"`
	ChangedPaths []string        `json:"changed_paths"`
	CreatedAt    time.Time       `json:"created_at"`
}
