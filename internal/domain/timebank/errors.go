package timebank

import "errors"

var (
	ErrEntryNotFound       = errors.New("time bank entry not found")
	ErrInsufficientBalance = errors.New("insufficient time bank balance")
)
