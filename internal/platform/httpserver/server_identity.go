package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	identityerrors "gatherly/contexts/identity-access/identity-service/domain/errors"
	identityhttp "gatherly/contexts/identity-access/identity-service/transport/http"
)

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.identity.Handler.RegisterUserHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.identity.Handler.GetUserHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleValidateUser serves the contract other services call before trusting
// an organizer. The payload shape is frozen: {user_id, is_active}.
func (s *Server) handleValidateUser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.identity.Handler.ValidateUserHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.identity.Handler.DeactivateUserHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeIdentityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identityerrors.ErrInvalidUserInput):
		writeIdentityError(w, http.StatusBadRequest, "invalid_user_input", err.Error())
	case errors.Is(err, identityerrors.ErrUserNotFound):
		writeIdentityError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, identityerrors.ErrDuplicateUser):
		writeIdentityError(w, http.StatusConflict, "duplicate_user", err.Error())
	default:
		writeIdentityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeIdentityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, identityhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
