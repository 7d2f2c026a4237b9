package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	invitationservice "gatherly/contexts/communication/invitation-service"
	eventservice "gatherly/contexts/event-planning/event-service"
	polllifecycle "gatherly/contexts/event-planning/poll-lifecycle"
	identityservice "gatherly/contexts/identity-access/identity-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "gatherly/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	events      eventservice.Module
	invitations invitationservice.Module
	polls       polllifecycle.Module
	identity    identityservice.Module
}

func New(
	events eventservice.Module,
	invitations invitationservice.Module,
	polls polllifecycle.Module,
	identity identityservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		events:      events,
		invitations: invitations,
		polls:       polls,
		identity:    identity,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /events", s.handleCreateEvent)
	s.mux.HandleFunc("GET /events/{event_id}", s.handleGetEvent)
	s.mux.HandleFunc("PATCH /events/{event_id}", s.handleUpdateEvent)

	s.mux.HandleFunc("POST /events/{event_id}/members", s.handleInviteMember)
	s.mux.HandleFunc("POST /events/{event_id}/members/{user_id}/respond", s.handleRespondToInvite)
	s.mux.HandleFunc("GET /events/{event_id}/members", s.handleListMembers)

	s.mux.HandleFunc("POST /events/{event_id}/poll", s.handleCreatePoll)
	s.mux.HandleFunc("GET /events/{event_id}/poll", s.handleGetPoll)
	s.mux.HandleFunc("POST /events/{event_id}/poll/options", s.handleAddPollOption)
	s.mux.HandleFunc("POST /events/{event_id}/poll/votes", s.handleSubmitVote)
	s.mux.HandleFunc("POST /events/{event_id}/poll/close", s.handleClosePoll)
	s.mux.HandleFunc("GET /events/{event_id}/poll/results", s.handlePollResults)

	s.mux.HandleFunc("POST /identity/users", s.handleRegisterUser)
	s.mux.HandleFunc("GET /identity/users/{user_id}", s.handleGetUser)
	s.mux.HandleFunc("GET /identity/users/{user_id}/validate", s.handleValidateUser)
	s.mux.HandleFunc("POST /identity/users/{user_id}/deactivate", s.handleDeactivateUser)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
