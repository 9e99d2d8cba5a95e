package request

import "github.com/campuskit/campuskit/pkg/serrors"

var (
	ErrNotFound          = serrors.NewError("REQUEST_NOT_FOUND", "request not found", "")
	ErrInvalidTransition = serrors.NewError("REQUEST_INVALID_TRANSITION", "status transition not allowed", "")
	ErrDetailMismatch    = serrors.NewError("REQUEST_DETAIL_MISMATCH", "detail kind does not match request type", "")
	ErrIDConflict        = serrors.NewError("REQUEST_ID_CONFLICT", "request id already exists", "")
	ErrDependency        = serrors.NewError("REQUEST_DEPENDENCY_UNAVAILABLE", "referenced resource does not exist", "")
)
