package claim

import "errors"

// Domain errors for claim review and reconciliation
var (
	ErrClaimBillNotFound     = errors.New("programme has no claim bill")
	ErrItemNotFound          = errors.New("expense item not found")
	ErrInvalidTransition     = errors.New("item status transition not permitted")
	ErrUnknownStatus         = errors.New("unknown item status")
	ErrRejectionReasonNeeded = errors.New("rejection requires a reason")
)
