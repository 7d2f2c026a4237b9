package entities

import "time"

// User is an account known to the platform. Organizers and voters are
// both plain users; only Active accounts may organize polls.
type User struct {
	UserID      string
	DisplayName string
	Email       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
