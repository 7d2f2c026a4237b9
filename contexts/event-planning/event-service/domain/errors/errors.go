package errors

import "errors"

var (
	ErrInvalidEventInput = errors.New("invalid event input")
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidSchedule   = errors.New("event schedule window is invalid")
)
