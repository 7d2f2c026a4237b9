package errors

import "errors"

var (
	ErrInvalidPollInput      = errors.New("invalid poll input")
	ErrInvalidOptionLabel    = errors.New("option label must be 1-120 characters")
	ErrEventNotFound         = errors.New("event not found")
	ErrPollAlreadyExists     = errors.New("event already has a poll")
	ErrPollNotFound          = errors.New("poll not found")
	ErrOptionNotFound        = errors.New("poll option not found")
	ErrPollClosed            = errors.New("poll is closed")
	ErrNotAMember            = errors.New("user is not a member of this event")
	ErrMembershipNotAccepted = errors.New("user has not accepted the event invitation")
	ErrDuplicateVote         = errors.New("voter already has a recorded vote in this poll")
	ErrTieBreakRequired      = errors.New("no strict plurality winner; an explicit tie-break option is required")
	ErrWinnerFrozen          = errors.New("poll is closed and its winner cannot be changed")
	ErrOrganizerInactive     = errors.New("organizer identity is not active")
	ErrIdentityUnavailable   = errors.New("identity service is unavailable")
	ErrIdentityTimeout       = errors.New("identity service timed out")
)
