package commands

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	application "gatherly/contexts/event-planning/poll-lifecycle/application"
	"gatherly/contexts/event-planning/poll-lifecycle/domain/entities"
	domainerrors "gatherly/contexts/event-planning/poll-lifecycle/domain/errors"
	"gatherly/contexts/event-planning/poll-lifecycle/ports"
)

const maxOptionLabelLength = 120

// CreatePollCommand is the write-model input for poll creation.
type CreatePollCommand struct {
	EventID     string
	OrganizerID string
	Options     []NewOption
	ClosesAt    *time.Time
}

// NewOption carries one option label with an optional explicit sort position.
// Positions default to submission order; duplicate labels are kept as
// distinct options on purpose.
type NewOption struct {
	Label    string
	Position *int
}

type AddOptionCommand struct {
	EventID  string
	UserID   string
	Label    string
	Position *int
}

type SubmitVoteCommand struct {
	EventID  string
	OptionID string
	VoterID  string
}

type ClosePollCommand struct {
	EventID string
	// FinalOptionID, when set, names the winner unconditionally. This is the
	// organizer tie-break path.
	FinalOptionID string
}

// PollUseCase orchestrates the poll state machine: create -> open, open ->
// closed, and nothing else. All validation and membership/identity gating
// happens before any storage mutation.
type PollUseCase struct {
	Polls    ports.PollRepository
	Votes    ports.VoteLedger
	Members  ports.MembershipReader
	Events   ports.EventDirectory
	Identity ports.IdentityVerifier
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// CreatePoll creates the single poll for an event in open status with the
// supplied initial options, each starting at tally zero. The organizer must
// resolve to an active identity before anything is written.
func (uc PollUseCase) CreatePoll(ctx context.Context, cmd CreatePollCommand) (entities.PollView, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID := strings.TrimSpace(cmd.EventID)
	organizerID := strings.TrimSpace(cmd.OrganizerID)
	logger.Info("poll create processing started",
		"event", "poll_create_started",
		"module", "event-planning/poll-lifecycle",
		"layer", "application",
		"event_id", eventID,
		"organizer_id", organizerID,
	)
	if eventID == "" || organizerID == "" {
		return entities.PollView{}, domainerrors.ErrInvalidPollInput
	}
	for _, option := range cmd.Options {
		if !isValidOptionLabel(option.Label) {
			return entities.PollView{}, domainerrors.ErrInvalidOptionLabel
		}
	}

	if err := uc.Identity.VerifyActive(ctx, organizerID); err != nil {
		logger.Warn("poll create organizer verification failed",
			"event", "poll_create_identity_rejected",
			"module", "event-planning/poll-lifecycle",
			"layer", "application",
			"event_id", eventID,
			"organizer_id", organizerID,
			"error", err.Error(),
		)
		return entities.PollView{}, err
	}

	if _, err := uc.Events.GetEvent(ctx, eventID); err != nil {
		return entities.PollView{}, err
	}
	if _, err := uc.Polls.GetPollByEvent(ctx, eventID); err == nil {
		return entities.PollView{}, domainerrors.ErrPollAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrPollNotFound) {
		return entities.PollView{}, err
	}

	now := uc.now()
	pollID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.PollView{}, err
	}
	poll := entities.Poll{
		PollID:    pollID,
		EventID:   eventID,
		Status:    entities.PollStatusOpen,
		ClosesAt:  normalizeClosesAt(cmd.ClosesAt),
		CreatedBy: organizerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	options := make([]entities.PollOption, 0, len(cmd.Options))
	for index, input := range cmd.Options {
		optionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.PollView{}, err
		}
		position := index
		if input.Position != nil {
			position = *input.Position
		}
		options = append(options, entities.PollOption{
			OptionID:  optionID,
			PollID:    pollID,
			Label:     strings.TrimSpace(input.Label),
			Position:  position,
			CreatedAt: now,
		})
	}

	if err := uc.Polls.CreatePoll(ctx, poll, options); err != nil {
		return entities.PollView{}, err
	}

	logger.Info("poll created",
		"event", "poll_created",
		"module", "event-planning/poll-lifecycle",
		"layer", "application",
		"poll_id", pollID,
		"event_id", eventID,
		"organizer_id", organizerID,
		"option_count", len(options),
	)
	return entities.PollView{Poll: poll, Options: sortOptions(options)}, nil
}

// AddOption inserts a new option at tally zero. Option submission is limited
// to accepted members and to polls that are still open.
func (uc PollUseCase) AddOption(ctx context.Context, cmd AddOptionCommand) (entities.PollOption, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID := strings.TrimSpace(cmd.EventID)
	userID := strings.TrimSpace(cmd.UserID)
	if eventID == "" || userID == "" {
		return entities.PollOption{}, domainerrors.ErrInvalidPollInput
	}
	if !isValidOptionLabel(cmd.Label) {
		return entities.PollOption{}, domainerrors.ErrInvalidOptionLabel
	}

	if err := uc.ensureAcceptedMember(ctx, eventID, userID); err != nil {
		return entities.PollOption{}, err
	}

	poll, err := uc.Polls.GetPollByEvent(ctx, eventID)
	if err != nil {
		return entities.PollOption{}, err
	}
	if poll.IsClosed() {
		return entities.PollOption{}, domainerrors.ErrPollClosed
	}

	options, err := uc.Polls.ListOptions(ctx, poll.PollID)
	if err != nil {
		return entities.PollOption{}, err
	}
	position := nextPosition(options)
	if cmd.Position != nil {
		position = *cmd.Position
	}

	optionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.PollOption{}, err
	}
	option := entities.PollOption{
		OptionID:  optionID,
		PollID:    poll.PollID,
		Label:     strings.TrimSpace(cmd.Label),
		Position:  position,
		CreatedAt: uc.now(),
	}
	if err := uc.Polls.AddOption(ctx, option); err != nil {
		return entities.PollOption{}, err
	}

	logger.Info("poll option added",
		"event", "poll_option_added",
		"module", "event-planning/poll-lifecycle",
		"layer", "application",
		"poll_id", poll.PollID,
		"option_id", option.OptionID,
		"event_id", eventID,
		"user_id", userID,
	)
	return option, nil
}

// SubmitVote appends one ledger row for an accepted member on an open poll,
// then re-derives the full tally set from the ledger. Tallies are never
// incremented in place, so concurrent submissions commit independently and
// the returned snapshot is simply the ledger state at read time.
func (uc PollUseCase) SubmitVote(ctx context.Context, cmd SubmitVoteCommand) (entities.PollView, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID := strings.TrimSpace(cmd.EventID)
	optionID := strings.TrimSpace(cmd.OptionID)
	voterID := strings.TrimSpace(cmd.VoterID)
	if eventID == "" || optionID == "" || voterID == "" {
		return entities.PollView{}, domainerrors.ErrInvalidPollInput
	}

	// The membership gate always runs before any ledger mutation.
	if err := uc.ensureAcceptedMember(ctx, eventID, voterID); err != nil {
		logger.Warn("vote rejected by membership gate",
			"event", "poll_vote_forbidden",
			"module", "event-planning/poll-lifecycle",
			"layer", "application",
			"event_id", eventID,
			"voter_id", voterID,
			"error", err.Error(),
		)
		return entities.PollView{}, err
	}

	poll, err := uc.Polls.GetPollByEvent(ctx, eventID)
	if err != nil {
		return entities.PollView{}, err
	}
	now := uc.now()
	if !poll.VotingAllowedAt(now) {
		return entities.PollView{}, domainerrors.ErrPollClosed
	}

	option, err := uc.Polls.GetOption(ctx, optionID)
	if err != nil {
		return entities.PollView{}, err
	}
	if option.PollID != poll.PollID {
		return entities.PollView{}, domainerrors.ErrOptionNotFound
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.PollView{}, err
	}
	if err := uc.Votes.AppendVote(ctx, entities.Vote{
		VoteID:    voteID,
		PollID:    poll.PollID,
		OptionID:  option.OptionID,
		VoterID:   voterID,
		CreatedAt: now,
	}); err != nil {
		return entities.PollView{}, err
	}

	view, err := uc.pollView(ctx, poll)
	if err != nil {
		return entities.PollView{}, err
	}

	uc.appendPollEvent(ctx, "poll.tally_updated", poll, now, map[string]any{
		"event_id":  poll.EventID,
		"poll_id":   poll.PollID,
		"option_id": option.OptionID,
		"voter_id":  voterID,
		"tallies":   tallyPayload(view.Options),
	})

	logger.Info("vote recorded",
		"event", "poll_vote_recorded",
		"module", "event-planning/poll-lifecycle",
		"layer", "application",
		"poll_id", poll.PollID,
		"option_id", option.OptionID,
		"event_id", eventID,
		"voter_id", voterID,
	)
	return view, nil
}

// ClosePoll transitions an open poll to closed and freezes the winner. An
// explicit FinalOptionID wins unconditionally; otherwise the strictly highest
// tally wins and a shared lead fails with ErrTieBreakRequired. Closing an
// already-closed poll is idempotent unless it names a different winner.
func (uc PollUseCase) ClosePoll(ctx context.Context, cmd ClosePollCommand) (entities.PollView, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID := strings.TrimSpace(cmd.EventID)
	finalOptionID := strings.TrimSpace(cmd.FinalOptionID)
	if eventID == "" {
		return entities.PollView{}, domainerrors.ErrInvalidPollInput
	}

	poll, err := uc.Polls.GetPollByEvent(ctx, eventID)
	if err != nil {
		return entities.PollView{}, err
	}
	if poll.IsClosed() {
		if finalOptionID != "" && finalOptionID != poll.WinnerOptionID {
			return entities.PollView{}, domainerrors.ErrWinnerFrozen
		}
		return uc.pollView(ctx, poll)
	}

	view, err := uc.pollView(ctx, poll)
	if err != nil {
		return entities.PollView{}, err
	}

	var winner entities.PollOption
	if finalOptionID != "" {
		found := false
		for _, option := range view.Options {
			if option.OptionID == finalOptionID {
				winner = option
				found = true
				break
			}
		}
		if !found {
			return entities.PollView{}, domainerrors.ErrOptionNotFound
		}
	} else {
		resolved, ok := view.Winner()
		if !ok {
			return entities.PollView{}, domainerrors.ErrTieBreakRequired
		}
		winner = resolved
	}

	now := uc.now()
	if err := uc.Polls.ClosePoll(ctx, poll.PollID, winner.OptionID, now); err != nil {
		return entities.PollView{}, err
	}
	// Poll resolution writes the winning label back to the owning event. The
	// coupling is deliberate: a resolved location poll names the venue.
	if err := uc.Events.UpdateLocation(ctx, poll.EventID, winner.Label, now); err != nil {
		return entities.PollView{}, err
	}

	poll.Status = entities.PollStatusClosed
	poll.WinnerOptionID = winner.OptionID
	poll.UpdatedAt = now
	view.Poll = poll

	uc.appendPollEvent(ctx, "poll.closed", poll, now, map[string]any{
		"event_id":         poll.EventID,
		"poll_id":          poll.PollID,
		"winner_option_id": winner.OptionID,
		"winner_label":     winner.Label,
	})

	logger.Info("poll closed",
		"event", "poll_closed",
		"module", "event-planning/poll-lifecycle",
		"layer", "application",
		"poll_id", poll.PollID,
		"event_id", poll.EventID,
		"winner_option_id", winner.OptionID,
		"tie_break", finalOptionID != "",
	)
	return view, nil
}

func (uc PollUseCase) ensureAcceptedMember(ctx context.Context, eventID string, userID string) error {
	member, found, err := uc.Members.GetMember(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrNotAMember
	}
	if member.Status != ports.MembershipStatusAccepted {
		return domainerrors.ErrMembershipNotAccepted
	}
	return nil
}

func (uc PollUseCase) pollView(ctx context.Context, poll entities.Poll) (entities.PollView, error) {
	options, err := uc.Polls.ListOptions(ctx, poll.PollID)
	if err != nil {
		return entities.PollView{}, err
	}
	counts, err := uc.Votes.CountVotesByOption(ctx, poll.PollID)
	if err != nil {
		return entities.PollView{}, err
	}
	for index := range options {
		options[index].Tally = counts[options[index].OptionID]
	}
	return entities.PollView{Poll: poll, Options: sortOptions(options)}, nil
}

// appendPollEvent is fire-and-forget by contract: a flaky notification path
// must never fail the operation that triggered it.
func (uc PollUseCase) appendPollEvent(
	ctx context.Context,
	eventType string,
	poll entities.Poll,
	occurredAt time.Time,
	data map[string]any,
) {
	if uc.Outbox == nil {
		return
	}
	logger := application.ResolveLogger(uc.Logger)
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("poll notification id generation failed",
			"event", "poll_notification_append_failed",
			"module", "event-planning/poll-lifecycle",
			"layer", "application",
			"poll_id", poll.PollID,
			"event_type", eventType,
			"error", err.Error(),
		)
		return
	}
	envelope, err := newPollEnvelope(eventID, eventType, poll.EventID, occurredAt, data)
	if err != nil {
		logger.Error("poll notification encode failed",
			"event", "poll_notification_append_failed",
			"module", "event-planning/poll-lifecycle",
			"layer", "application",
			"poll_id", poll.PollID,
			"event_type", eventType,
			"error", err.Error(),
		)
		return
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		logger.Error("poll notification append failed",
			"event", "poll_notification_append_failed",
			"module", "event-planning/poll-lifecycle",
			"layer", "application",
			"poll_id", poll.PollID,
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}

func (uc PollUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func isValidOptionLabel(label string) bool {
	trimmed := strings.TrimSpace(label)
	return trimmed != "" && utf8.RuneCountInString(trimmed) <= maxOptionLabelLength
}

func nextPosition(options []entities.PollOption) int {
	next := 0
	for _, option := range options {
		if option.Position >= next {
			next = option.Position + 1
		}
	}
	return next
}

func sortOptions(options []entities.PollOption) []entities.PollOption {
	sorted := append([]entities.PollOption(nil), options...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position == sorted[j].Position {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

func tallyPayload(options []entities.PollOption) []map[string]any {
	items := make([]map[string]any, 0, len(options))
	for _, option := range options {
		items = append(items, map[string]any{
			"option_id": option.OptionID,
			"label":     option.Label,
			"tally":     option.Tally,
		})
	}
	return items
}
