package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	pollerrors "gatherly/contexts/event-planning/poll-lifecycle/domain/errors"
	pollhttp "gatherly/contexts/event-planning/poll-lifecycle/transport/http"
)

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.polls.Handler.CreatePollHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.GetPollHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddPollOption(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.AddOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.polls.Handler.AddOptionHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Votes return 202: the tally set in the body is authoritative, but the
// notification fan-out it triggers is asynchronous.
func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.SubmitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.polls.Handler.SubmitVoteHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (s *Server) handleClosePoll(w http.ResponseWriter, r *http.Request) {
	var req pollhttp.ClosePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePollError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.polls.Handler.ClosePollHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.polls.Handler.ResultsHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writePollDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pollerrors.ErrInvalidPollInput):
		writePollError(w, http.StatusBadRequest, "invalid_poll_input", err.Error())
	case errors.Is(err, pollerrors.ErrInvalidOptionLabel):
		writePollError(w, http.StatusBadRequest, "invalid_option_label", err.Error())
	case errors.Is(err, pollerrors.ErrOrganizerInactive):
		writePollError(w, http.StatusUnauthorized, "organizer_inactive", err.Error())
	case errors.Is(err, pollerrors.ErrNotAMember):
		writePollError(w, http.StatusForbidden, "not_a_member", err.Error())
	case errors.Is(err, pollerrors.ErrMembershipNotAccepted):
		writePollError(w, http.StatusForbidden, "not_accepted", err.Error())
	case errors.Is(err, pollerrors.ErrEventNotFound):
		writePollError(w, http.StatusNotFound, "event_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrPollNotFound):
		writePollError(w, http.StatusNotFound, "poll_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrOptionNotFound):
		writePollError(w, http.StatusNotFound, "option_not_found", err.Error())
	case errors.Is(err, pollerrors.ErrPollAlreadyExists):
		writePollError(w, http.StatusConflict, "poll_exists", err.Error())
	case errors.Is(err, pollerrors.ErrDuplicateVote):
		writePollError(w, http.StatusConflict, "duplicate_vote", err.Error())
	case errors.Is(err, pollerrors.ErrTieBreakRequired):
		writePollError(w, http.StatusConflict, "tie_break_required", err.Error())
	case errors.Is(err, pollerrors.ErrWinnerFrozen):
		writePollError(w, http.StatusConflict, "winner_frozen", err.Error())
	case errors.Is(err, pollerrors.ErrPollClosed):
		writePollError(w, http.StatusGone, "poll_closed", err.Error())
	case errors.Is(err, pollerrors.ErrIdentityUnavailable):
		writePollError(w, http.StatusServiceUnavailable, "identity_unavailable", err.Error())
	case errors.Is(err, pollerrors.ErrIdentityTimeout):
		writePollError(w, http.StatusGatewayTimeout, "identity_timeout", err.Error())
	default:
		writePollError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePollError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pollhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
