package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	eventerrors "gatherly/contexts/event-planning/event-service/domain/errors"
	eventhttp "gatherly/contexts/event-planning/event-service/transport/http"
)

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventhttp.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEventError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.events.Handler.CreateEventHandler(r.Context(), req)
	if err != nil {
		writeEventDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	resp, err := s.events.Handler.GetEventHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		writeEventDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventhttp.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEventError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.events.Handler.UpdateEventHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		writeEventDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeEventDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eventerrors.ErrInvalidEventInput):
		writeEventError(w, http.StatusBadRequest, "invalid_event_input", err.Error())
	case errors.Is(err, eventerrors.ErrInvalidSchedule):
		writeEventError(w, http.StatusBadRequest, "invalid_schedule", err.Error())
	case errors.Is(err, eventerrors.ErrEventNotFound):
		writeEventError(w, http.StatusNotFound, "event_not_found", err.Error())
	default:
		writeEventError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEventError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, eventhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
