package entities

import "time"

type PollStatus string

const (
	PollStatusOpen   PollStatus = "open"
	PollStatusClosed PollStatus = "closed"
)

// Poll is the voting construct attached to exactly one event. A poll is
// created open and can only ever transition open -> closed; the winner is
// frozen at close time and never rewritten.
type Poll struct {
	PollID         string
	EventID        string
	Status         PollStatus
	ClosesAt       *time.Time
	WinnerOptionID string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p Poll) IsClosed() bool {
	return p.Status == PollStatusClosed
}

// VotingAllowedAt reports whether votes may still be recorded at the given
// instant. ClosesAt is advisory metadata with no background enforcement, so
// it is evaluated here at request time only.
func (p Poll) VotingAllowedAt(now time.Time) bool {
	if p.Status != PollStatusOpen {
		return false
	}
	if p.ClosesAt != nil && !now.Before(p.ClosesAt.UTC()) {
		return false
	}
	return true
}

// PollOption carries its tally as a derived value: repositories always
// compute it from the vote ledger, never increment it in place.
type PollOption struct {
	OptionID  string
	PollID    string
	Label     string
	Position  int
	Tally     int
	CreatedAt time.Time
}

// Vote is one append-only ledger row. Rows are only ever inserted; tallies
// are aggregate reads over them.
type Vote struct {
	VoteID    string
	PollID    string
	OptionID  string
	VoterID   string
	CreatedAt time.Time
}

// PollView is the read shape returned by poll operations: the poll plus its
// options sorted by position with tallies derived from the ledger.
type PollView struct {
	Poll    Poll
	Options []PollOption
}

// Winner resolves the option with the strictly highest tally. The second
// return is false when the view has no options or the lead is shared, in
// which case the caller must supply an explicit tie-break option.
func (v PollView) Winner() (PollOption, bool) {
	if len(v.Options) == 0 {
		return PollOption{}, false
	}
	best := v.Options[0]
	tied := false
	for _, option := range v.Options[1:] {
		switch {
		case option.Tally > best.Tally:
			best = option
			tied = false
		case option.Tally == best.Tally:
			tied = true
		}
	}
	if tied {
		return PollOption{}, false
	}
	return best, true
}
