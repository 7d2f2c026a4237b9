package entities

import "time"

// Event is the plan being organized: a title, an optional venue, and an
// optional schedule window. Location is writable by the poll lifecycle when
// a location poll resolves.
type Event struct {
	EventID   string
	Title     string
	Location  string
	StartsAt  *time.Time
	EndsAt    *time.Time
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
