package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePollRequest struct {
	OrganizerID string              `json:"organizer_id"`
	ClosesAt    *time.Time          `json:"closes_at,omitempty"`
	Options     []CreateOptionInput `json:"options"`
}

type CreateOptionInput struct {
	Label string `json:"label"`
	Order *int   `json:"order,omitempty"`
}

type AddOptionRequest struct {
	UserID string `json:"user_id"`
	Label  string `json:"label"`
	Order  *int   `json:"order,omitempty"`
}

type SubmitVoteRequest struct {
	OptionID string `json:"option_id"`
	VoterID  string `json:"voter_id"`
}

type ClosePollRequest struct {
	FinalOptionID string `json:"final_option_id,omitempty"`
}

type OptionPayload struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
	Tally int    `json:"tally"`
}

type PollPayload struct {
	ID             string          `json:"id"`
	EventID        string          `json:"event_id"`
	Status         string          `json:"status"`
	ClosesAt       *time.Time      `json:"closes_at,omitempty"`
	WinnerOptionID string          `json:"winner_option_id,omitempty"`
	Options        []OptionPayload `json:"options"`
}

type PollResponse struct {
	Data PollPayload `json:"data"`
}

type OptionResponse struct {
	Data OptionPayload `json:"data"`
}

type TallyItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Tally int    `json:"tally"`
}

type TallySetPayload struct {
	Tallies []TallyItem `json:"tallies"`
}

type TallyResponse struct {
	Data TallySetPayload `json:"data"`
}

type ResultsPayload struct {
	PollID         string      `json:"poll_id"`
	EventID        string      `json:"event_id"`
	WinnerOptionID string      `json:"winner_option_id"`
	Tallies        []TallyItem `json:"tallies"`
}

type ResultsResponse struct {
	Data ResultsPayload `json:"data"`
}
