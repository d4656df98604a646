package absence

import "errors"

var (
	ErrAbsenceRequestNotFound   = errors.New("absence request not found")
	ErrAbsenceRequestNotPending = errors.New("absence request is no longer pending")
)
