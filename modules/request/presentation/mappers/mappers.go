package mappers

import (
	"encoding/json"

	"github.com/wI2L/jsondiff"

	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/modules/request/domain/entities/auditlog"
	"github.com/campuskit/campuskit/modules/request/presentation/viewmodels"
)

func RequestToViewModel(r request.Request) viewmodels.Request {
	detail, _ := json.Marshal(r.Detail())
	return viewmodels.Request{
		ID:           r.ID(),
		Title:        r.Title(),
		Description:  r.Description(),
		Type:         string(r.Type()),
		Priority:     string(r.Priority()),
		Status:       string(r.Status()),
		RequesterID:  r.RequesterID(),
		DepartmentID: r.DepartmentID(),
		CancelReason: r.CancelReason(),
		Detail:       detail,
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
		CompletedAt:  r.CompletedAt(),
	}
}

func RequestsToViewModels(items []request.Request, total int64) viewmodels.RequestList {
	out := make([]viewmodels.Request, 0, len(items))
	for _, r := range items {
		out = append(out, RequestToViewModel(r))
	}
	return viewmodels.RequestList{Items: out, Total: total}
}

// AuditEntryToViewModel computes the changed JSON pointer paths between the
// stored snapshots. A diff failure degrades to an empty path list rather
// than failing the whole trail.
func AuditEntryToViewModel(e auditlog.Entry) viewmodels.AuditEntry {
	vm := viewmodels.AuditEntry{
		ID:           e.ID(),
		RequestID:    e.RequestID(),
		ChangeType:   string(e.ChangeType()),
		ActorID:      e.ActorID(),
		OldValue:     e.OldValue(),
		NewValue:     e.NewValue(),
		ChangedPaths: []string{},
		CreatedAt:    e.CreatedAt(),
	}

	if len(e.OldValue()) == 0 {
		return vm
	}
	patch, err := jsondiff.CompareJSON(e.OldValue(), e.NewValue())
	if err != nil {
		return vm
	}
	seen := make(map[string]struct{}, len(patch))
	for _, op := range patch {
		if _, ok := seen[op.Path]; ok {
			continue
		}
		seen[op.Path] = struct{}{}
		vm.ChangedPaths = append(vm.ChangedPaths, op.Path)
	}
	return vm
}

func AuditEntriesToViewModels(entries []auditlog.Entry) []viewmodels.AuditEntry {
	out := make([]viewmodels.AuditEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryToViewModel(e))
	}
	return out
}
