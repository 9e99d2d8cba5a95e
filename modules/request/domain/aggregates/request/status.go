package request

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusOnHold    Status = "ON_HOLD"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// transitions is the single source of truth for the request lifecycle.
// REJECTED, CANCELLED and COMPLETED are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled, StatusOnHold},
	StatusOnHold:    {StatusPending},
	StatusApproved:  {StatusCompleted},
	StatusRejected:  {},
	StatusCancelled: {},
	StatusCompleted: {},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// ChangeType labels an audit entry. Derived from the edit that produced it,
// never supplied over the wire.
type ChangeType string

const (
	ChangeStatus     ChangeType = "STATUS_CHANGE"
	ChangeField      ChangeType = "FIELD_UPDATE"
	ChangeAssignment ChangeType = "ASSIGNMENT_CHANGE"
	ChangeReviewer   ChangeType = "REVIEWER_CHANGE"
	ChangeApprover   ChangeType = "APPROVER_CHANGE"
	ChangeApproved   ChangeType = "APPROVED"
	ChangeCancelled  ChangeType = "CANCELLED"
	ChangeCreated    ChangeType = "CREATED"
	ChangeOther      ChangeType = "OTHER"
)

// DeriveAssignmentChange labels a personnel edit. Single-field edits get
// their dedicated label; an edit touching several fields at once is a plain
// field update.
func DeriveAssignmentChange(assignee, reviewer, approver bool) ChangeType {
	n := 0
	for _, b := range []bool{assignee, reviewer, approver} {
		if b {
			n++
		}
	}
	switch {
	case n > 1:
		return ChangeField
	case assignee:
		return ChangeAssignment
	case reviewer:
		return ChangeReviewer
	case approver:
		return ChangeApprover
	default:
		return ChangeOther
	}
}

// DeriveChangeType maps a status transition to its audit label. Approval and
// cancellation get dedicated labels; every other legal edge is a plain status
// change.
func DeriveChangeType(from, to Status) ChangeType {
	switch {
	case to == StatusApproved:
		return ChangeApproved
	case to == StatusCancelled:
		return ChangeCancelled
	case from != to:
		return ChangeStatus
	default:
		return ChangeOther
	}
}
