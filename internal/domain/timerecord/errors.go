package timerecord

import "errors"

var (
	ErrTimeRecordNotFound     = errors.New("time record not found")
	ErrRecordAlreadyProcessed = errors.New("time record was already processed for the time bank")
	ErrNotClockOut            = errors.New("only clock-out records can be processed for the time bank")
	ErrTimestampInFuture      = errors.New("time record timestamp cannot be in the future")
)
