package errors

import "errors"

var (
	ErrInvalidUserInput = errors.New("invalid user input")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateUser    = errors.New("user already registered")
)
