package mappers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/modules/request/domain/entities/auditlog"
)

func TestAuditEntryToViewModel_ChangedPaths(t *testing.T) {
	oldValue := json.RawMessage(`{"status":"PENDING","title":"Fix projector","cancel_reason":""}`)
	newValue := json.RawMessage(`{"status":"CANCELLED","title":"Fix projector","cancel_reason":"duplicate"}`)

	vm := AuditEntryToViewModel(auditlog.New("REQ-1", request.ChangeCancelled, "u-1", oldValue, newValue))

	assert.ElementsMatch(t, []string{"/status", "/cancel_reason"}, vm.ChangedPaths)
	assert.Equal(t, "CANCELLED", vm.ChangeType)
}

func TestAuditEntryToViewModel_CreationHasNoPaths(t *testing.T) {
	newValue := json.RawMessage(`{"status":"PENDING"}`)

	vm := AuditEntryToViewModel(auditlog.New("REQ-1", request.ChangeCreated, "u-1", nil, newValue))

	assert.Empty(t, vm.ChangedPaths)
	assert.NotNil(t, vm.ChangedPaths)
	assert.Empty(t, vm.OldValue)
}

func TestAuditEntryToViewModel_MalformedSnapshotDegrades(t *testing.T) {
	vm := AuditEntryToViewModel(auditlog.New("REQ-1", request.ChangeStatus, "u-1",
		json.RawMessage(`{not json`), json.RawMessage(`{"status":"APPROVED"}`)))

	assert.Empty(t, vm.ChangedPaths)
}

func TestRequestToViewModel(t *testing.T) {
	detail := request.JobDetail{ID: "JRQ-abc", JobType: "MAINTENANCE", Description: "seed"}
	entity := request.New(request.TypeJob, request.PriorityHigh, "Fix projector", "desc", "u-1", "d-1", detail)

	vm := RequestToViewModel(entity)

	assert.Equal(t, entity.ID(), vm.ID)
	assert.Equal(t, "PENDING", vm.Status)
	assert.Equal(t, "JOB", vm.Type)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(vm.Detail, &decoded))
	assert.Equal(t, "JRQ-abc", decoded["id"])
}
