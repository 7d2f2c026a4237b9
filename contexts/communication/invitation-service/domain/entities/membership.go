package entities

import "time"

type MembershipStatus string

const (
	MembershipStatusInvited  MembershipStatus = "invited"
	MembershipStatusAccepted MembershipStatus = "accepted"
	MembershipStatusDeclined MembershipStatus = "declined"
)

// Membership records one user's relationship to one event under the
// composite key (event_id, user_id). Status moves one way only: invited is
// the entry state and accepted/declined are terminal.
type Membership struct {
	EventID   string
	UserID    string
	Status    MembershipStatus
	InvitedBy string
	InvitedAt time.Time
	JoinedAt  *time.Time
}

func (m Membership) CanRespond() bool {
	return m.Status == MembershipStatusInvited
}
