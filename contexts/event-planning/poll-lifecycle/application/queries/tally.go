package queries

import (
	"context"
	"sort"
	"strings"

	"gatherly/contexts/event-planning/poll-lifecycle/domain/entities"
	domainerrors "gatherly/contexts/event-planning/poll-lifecycle/domain/errors"
	"gatherly/contexts/event-planning/poll-lifecycle/ports"
)

// TallyUseCase serves poll reads. Tallies are always derived from the vote
// ledger at read time; the snapshot a caller receives may be stale relative
// to votes committed immediately after.
type TallyUseCase struct {
	Polls ports.PollRepository
	Votes ports.VoteLedger
}

func (uc TallyUseCase) GetPoll(ctx context.Context, eventID string) (entities.PollView, error) {
	trimmed := strings.TrimSpace(eventID)
	if trimmed == "" {
		return entities.PollView{}, domainerrors.ErrInvalidPollInput
	}
	poll, err := uc.Polls.GetPollByEvent(ctx, trimmed)
	if err != nil {
		return entities.PollView{}, err
	}
	return uc.view(ctx, poll)
}

// Results is GetPoll restricted to closed polls, for callers that only want
// the resolved outcome.
func (uc TallyUseCase) Results(ctx context.Context, eventID string) (entities.PollView, error) {
	view, err := uc.GetPoll(ctx, eventID)
	if err != nil {
		return entities.PollView{}, err
	}
	if !view.Poll.IsClosed() {
		return entities.PollView{}, domainerrors.ErrPollNotFound
	}
	return view, nil
}

func (uc TallyUseCase) view(ctx context.Context, poll entities.Poll) (entities.PollView, error) {
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
	sortByPosition(options)
	return entities.PollView{Poll: poll, Options: options}, nil
}

func sortByPosition(options []entities.PollOption) {
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Position == options[j].Position {
			return options[i].CreatedAt.Before(options[j].CreatedAt)
		}
		return options[i].Position < options[j].Position
	})
}
