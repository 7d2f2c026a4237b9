package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"gatherly/contexts/event-planning/poll-lifecycle/adapters/memory"
	"gatherly/contexts/event-planning/poll-lifecycle/domain/entities"
	domainerrors "gatherly/contexts/event-planning/poll-lifecycle/domain/errors"
)

func seedPoll(t *testing.T, store *memory.Store, status entities.PollStatus) entities.Poll {
	t.Helper()
	now := time.Now().UTC()
	poll := entities.Poll{
		PollID:    "poll-1",
		EventID:   "event-1",
		Status:    status,
		CreatedBy: "organizer-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	options := []entities.PollOption{
		{OptionID: "opt-a", PollID: "poll-1", Label: "Park", Position: 1, CreatedAt: now},
		{OptionID: "opt-b", PollID: "poll-1", Label: "Rooftop", Position: 0, CreatedAt: now},
	}
	if err := store.CreatePoll(context.Background(), poll, options); err != nil {
		t.Fatalf("seed poll: %v", err)
	}
	return poll
}

func TestGetPollDerivesTalliesAndOrdersByPosition(t *testing.T) {
	store := memory.NewStore()
	seedPoll(t, store, entities.PollStatusOpen)
	for i, voter := range []string{"v1", "v2", "v3"} {
		optionID := "opt-a"
		if i == 0 {
			optionID = "opt-b"
		}
		if err := store.AppendVote(context.Background(), entities.Vote{
			VoteID:   "vote-" + voter,
			PollID:   "poll-1",
			OptionID: optionID,
			VoterID:  voter,
		}); err != nil {
			t.Fatalf("seed vote: %v", err)
		}
	}
	uc := TallyUseCase{Polls: store, Votes: store}

	view, err := uc.GetPoll(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("GetPoll() error = %v", err)
	}
	if view.Options[0].OptionID != "opt-b" || view.Options[1].OptionID != "opt-a" {
		t.Fatalf("options not ordered by position: %q then %q", view.Options[0].OptionID, view.Options[1].OptionID)
	}
	if view.Options[0].Tally != 1 || view.Options[1].Tally != 2 {
		t.Fatalf("tallies = [%d %d], want [1 2]", view.Options[0].Tally, view.Options[1].Tally)
	}
}

func TestResultsOnlyServesClosedPolls(t *testing.T) {
	store := memory.NewStore()
	seedPoll(t, store, entities.PollStatusOpen)
	uc := TallyUseCase{Polls: store, Votes: store}

	if _, err := uc.Results(context.Background(), "event-1"); !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("Results(open poll) error = %v, want ErrPollNotFound", err)
	}

	if err := store.ClosePoll(context.Background(), "poll-1", "opt-b", time.Now().UTC()); err != nil {
		t.Fatalf("close poll: %v", err)
	}
	view, err := uc.Results(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("Results(closed poll) error = %v", err)
	}
	if view.Poll.WinnerOptionID != "opt-b" {
		t.Fatalf("winner = %q, want opt-b", view.Poll.WinnerOptionID)
	}
}

func TestGetPollUnknownEvent(t *testing.T) {
	uc := TallyUseCase{Polls: memory.NewStore(), Votes: memory.NewStore()}
	if _, err := uc.GetPoll(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("GetPoll() error = %v, want ErrPollNotFound", err)
	}
}
