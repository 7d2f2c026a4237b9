package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	inviteerrors "gatherly/contexts/communication/invitation-service/domain/errors"
	invitehttp "gatherly/contexts/communication/invitation-service/transport/http"
)

func (s *Server) handleInviteMember(w http.ResponseWriter, r *http.Request) {
	var req invitehttp.InviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInviteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.invitations.Handler.InviteMemberHandler(r.Context(), r.PathValue("event_id"), req)
	if err != nil {
		writeInviteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRespondToInvite(w http.ResponseWriter, r *http.Request) {
	var req invitehttp.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInviteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.invitations.Handler.RespondHandler(
		r.Context(),
		r.PathValue("event_id"),
		r.PathValue("user_id"),
		req,
	)
	if err != nil {
		writeInviteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.invitations.Handler.ListMembersHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		writeInviteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeInviteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inviteerrors.ErrInvalidInviteInput):
		writeInviteError(w, http.StatusBadRequest, "invalid_invite_input", err.Error())
	case errors.Is(err, inviteerrors.ErrInvalidResponse):
		writeInviteError(w, http.StatusBadRequest, "invalid_response", err.Error())
	case errors.Is(err, inviteerrors.ErrEventNotFound):
		writeInviteError(w, http.StatusNotFound, "event_not_found", err.Error())
	case errors.Is(err, inviteerrors.ErrInviteNotFound):
		writeInviteError(w, http.StatusNotFound, "invite_not_found", err.Error())
	case errors.Is(err, inviteerrors.ErrAlreadyInvited):
		writeInviteError(w, http.StatusConflict, "already_invited", err.Error())
	case errors.Is(err, inviteerrors.ErrAlreadyResponded):
		writeInviteError(w, http.StatusConflict, "already_responded", err.Error())
	default:
		writeInviteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeInviteError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, invitehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
