package permissions

import (
	"github.com/campuskit/campuskit/modules/request/domain/aggregates/request"
	"github.com/campuskit/campuskit/pkg/authz"
)

const Object = "request"

const (
	ActionCreate   = "create"
	ActionView     = "view"
	ActionAssign   = "assign"
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionHold     = "hold"
	ActionRelease  = "release"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

// StatusAction maps a target status onto the action a role needs for it.
func StatusAction(to request.Status) string {
	switch to {
	case request.StatusApproved:
		return ActionApprove
	case request.StatusRejected:
		return ActionReject
	case request.StatusOnHold:
		return ActionHold
	case request.StatusPending:
		return ActionRelease
	case request.StatusCompleted:
		return ActionComplete
	case request.StatusCancelled:
		return ActionCancel
	default:
		return ActionView
	}
}

// Policies is the request module's contribution to the role guard. USER owns
// the requester surface, STAFF works assigned requests, APPROVER decides,
// ADMIN inherits everything.
func Policies() []authz.Policy {
	return []authz.Policy{
		{Role: "USER", Object: Object, Action: ActionCreate},
		{Role: "USER", Object: Object, Action: ActionView},
		{Role: "USER", Object: Object, Action: ActionCancel},

		{Role: "STAFF", Object: Object, Action: ActionComplete},

		{Role: "APPROVER", Object: Object, Action: ActionApprove},
		{Role: "APPROVER", Object: Object, Action: ActionReject},
		{Role: "APPROVER", Object: Object, Action: ActionHold},
		{Role: "APPROVER", Object: Object, Action: ActionRelease},
		{Role: "APPROVER", Object: Object, Action: ActionAssign},
	}
}

func Groupings() []authz.Grouping {
	return []authz.Grouping{
		{Role: "STAFF", Parent: "USER"},
		{Role: "APPROVER", Parent: "STAFF"},
		{Role: "ADMIN", Parent: "APPROVER"},
	}
}
