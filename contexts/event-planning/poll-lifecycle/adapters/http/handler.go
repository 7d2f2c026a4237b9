package httpadapter

import (
	"context"
	"log/slog"

	"gatherly/contexts/event-planning/poll-lifecycle/application/commands"
	"gatherly/contexts/event-planning/poll-lifecycle/application/queries"
	"gatherly/contexts/event-planning/poll-lifecycle/domain/entities"
	httptransport "gatherly/contexts/event-planning/poll-lifecycle/transport/http"
)

type Handler struct {
	Polls   commands.PollUseCase
	Tallies queries.TallyUseCase
	Logger  *slog.Logger
}

func (h Handler) CreatePollHandler(
	ctx context.Context,
	eventID string,
	req httptransport.CreatePollRequest,
) (httptransport.PollResponse, error) {
	options := make([]commands.NewOption, 0, len(req.Options))
	for _, option := range req.Options {
		options = append(options, commands.NewOption{
			Label:    option.Label,
			Position: option.Order,
		})
	}
	view, err := h.Polls.CreatePoll(ctx, commands.CreatePollCommand{
		EventID:     eventID,
		OrganizerID: req.OrganizerID,
		Options:     options,
		ClosesAt:    req.ClosesAt,
	})
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return httptransport.PollResponse{Data: pollPayload(view)}, nil
}

func (h Handler) AddOptionHandler(
	ctx context.Context,
	eventID string,
	req httptransport.AddOptionRequest,
) (httptransport.OptionResponse, error) {
	option, err := h.Polls.AddOption(ctx, commands.AddOptionCommand{
		EventID:  eventID,
		UserID:   req.UserID,
		Label:    req.Label,
		Position: req.Order,
	})
	if err != nil {
		return httptransport.OptionResponse{}, err
	}
	return httptransport.OptionResponse{Data: optionPayload(option)}, nil
}

func (h Handler) GetPollHandler(ctx context.Context, eventID string) (httptransport.PollResponse, error) {
	view, err := h.Tallies.GetPoll(ctx, eventID)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return httptransport.PollResponse{Data: pollPayload(view)}, nil
}

func (h Handler) SubmitVoteHandler(
	ctx context.Context,
	eventID string,
	req httptransport.SubmitVoteRequest,
) (httptransport.TallyResponse, error) {
	view, err := h.Polls.SubmitVote(ctx, commands.SubmitVoteCommand{
		EventID:  eventID,
		OptionID: req.OptionID,
		VoterID:  req.VoterID,
	})
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{
		Data: httptransport.TallySetPayload{Tallies: tallyItems(view.Options)},
	}, nil
}

func (h Handler) ClosePollHandler(
	ctx context.Context,
	eventID string,
	req httptransport.ClosePollRequest,
) (httptransport.PollResponse, error) {
	view, err := h.Polls.ClosePoll(ctx, commands.ClosePollCommand{
		EventID:       eventID,
		FinalOptionID: req.FinalOptionID,
	})
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return httptransport.PollResponse{Data: pollPayload(view)}, nil
}

func (h Handler) ResultsHandler(ctx context.Context, eventID string) (httptransport.ResultsResponse, error) {
	view, err := h.Tallies.Results(ctx, eventID)
	if err != nil {
		return httptransport.ResultsResponse{}, err
	}
	return httptransport.ResultsResponse{
		Data: httptransport.ResultsPayload{
			PollID:         view.Poll.PollID,
			EventID:        view.Poll.EventID,
			WinnerOptionID: view.Poll.WinnerOptionID,
			Tallies:        tallyItems(view.Options),
		},
	}, nil
}

func pollPayload(view entities.PollView) httptransport.PollPayload {
	options := make([]httptransport.OptionPayload, 0, len(view.Options))
	for _, option := range view.Options {
		options = append(options, optionPayload(option))
	}
	return httptransport.PollPayload{
		ID:             view.Poll.PollID,
		EventID:        view.Poll.EventID,
		Status:         string(view.Poll.Status),
		ClosesAt:       view.Poll.ClosesAt,
		WinnerOptionID: view.Poll.WinnerOptionID,
		Options:        options,
	}
}

func optionPayload(option entities.PollOption) httptransport.OptionPayload {
	return httptransport.OptionPayload{
		ID:    option.OptionID,
		Label: option.Label,
		Order: option.Position,
		Tally: option.Tally,
	}
}

func tallyItems(options []entities.PollOption) []httptransport.TallyItem {
	items := make([]httptransport.TallyItem, 0, len(options))
	for _, option := range options {
		items = append(items, httptransport.TallyItem{
			ID:    option.OptionID,
			Label: option.Label,
			Tally: option.Tally,
		})
	}
	return items
}
