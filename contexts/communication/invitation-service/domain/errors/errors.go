package errors

import "errors"

var (
	ErrInvalidInviteInput = errors.New("invalid invitation input")
	ErrInvalidResponse    = errors.New("response action must be accept or decline")
	ErrEventNotFound      = errors.New("event not found")
	ErrInviteNotFound     = errors.New("no invitation exists for this user and event")
	ErrAlreadyInvited     = errors.New("user already has a membership for this event")
	ErrAlreadyResponded   = errors.New("invitation was already answered")
)
