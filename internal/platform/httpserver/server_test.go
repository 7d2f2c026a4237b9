package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	invitationservice "gatherly/contexts/communication/invitation-service"
	inviteports "gatherly/contexts/communication/invitation-service/ports"
	eventservice "gatherly/contexts/event-planning/event-service"
	eventhttp "gatherly/contexts/event-planning/event-service/transport/http"
	polllifecycle "gatherly/contexts/event-planning/poll-lifecycle"
	pollports "gatherly/contexts/event-planning/poll-lifecycle/ports"
	pollhttp "gatherly/contexts/event-planning/poll-lifecycle/transport/http"
	identityservice "gatherly/contexts/identity-access/identity-service"
	identityhttp "gatherly/contexts/identity-access/identity-service/transport/http"
)

type testServer struct {
	handler     http.Handler
	events      eventservice.Module
	invitations invitationservice.Module
	polls       polllifecycle.Module
	identity    identityservice.Module
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := eventservice.NewInMemoryModule(logger)
	invitations := invitationservice.NewInMemoryModule(logger)
	polls := polllifecycle.NewInMemoryModule(logger)
	identity := identityservice.NewInMemoryModule(logger)
	server := New(events, invitations, polls, identity, logger, ":0")
	return testServer{
		handler:     server.Handler(),
		events:      events,
		invitations: invitations,
		polls:       polls,
		identity:    identity,
	}
}

func (ts testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	if err := json.NewDecoder(rec.Body).Decode(&value); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return value
}

// seedPollContext puts an event, its accepted member and active identities
// into the poll module's projections. In production these rows arrive through
// the repositories of the owning contexts; the in-memory modules keep
// separate stores, so tests seed them directly.
func (ts testServer) seedPollContext(eventID string, organizerID string, voterIDs ...string) {
	ts.polls.Store.SetEvent(pollports.EventProjection{EventID: eventID, Title: "Team offsite"})
	ts.polls.Store.SetIdentity(organizerID, true)
	ts.polls.Store.SetMember(pollports.MemberProjection{
		EventID: eventID,
		UserID:  organizerID,
		Status:  pollports.MembershipStatusAccepted,
	})
	for _, voterID := range voterIDs {
		ts.polls.Store.SetIdentity(voterID, true)
		ts.polls.Store.SetMember(pollports.MemberProjection{
			EventID: eventID,
			UserID:  voterID,
			Status:  pollports.MembershipStatusAccepted,
		})
	}
}

func TestEventRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/events", eventhttp.CreateEventRequest{
		Title:     "Team offsite",
		CreatedBy: "organizer-1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decode[eventhttp.EventResponse](t, rec)
	if created.Data.ID == "" {
		t.Fatal("event id missing from response")
	}

	rec = ts.do(t, http.MethodGet, "/events/"+created.Data.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	loaded := decode[eventhttp.EventResponse](t, rec)
	if loaded.Data.Title != "Team offsite" {
		t.Fatalf("title = %q", loaded.Data.Title)
	}

	rec = ts.do(t, http.MethodGet, "/events/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown event status = %d", rec.Code)
	}
	errResp := decode[eventhttp.ErrorResponse](t, rec)
	if errResp.Code != "event_not_found" {
		t.Fatalf("error code = %q", errResp.Code)
	}
}

func TestInvalidJSONRejected(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	errResp := decode[eventhttp.ErrorResponse](t, rec)
	if errResp.Code != "invalid_json" {
		t.Fatalf("error code = %q", errResp.Code)
	}
}

func TestMemberRoutes(t *testing.T) {
	ts := newTestServer(t)
	ts.invitations.Store.SetEvent(inviteports.EventProjection{EventID: "event-1", Title: "Team offsite"})

	rec := ts.do(t, http.MethodPost, "/events/event-1/members", map[string]string{
		"user_id":    "user-1",
		"invited_by": "organizer-1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("invite status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodPost, "/events/event-1/members", map[string]string{
		"user_id":    "user-1",
		"invited_by": "organizer-1",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate invite status = %d", rec.Code)
	}

	rec = ts.do(t, http.MethodPost, "/events/event-1/members/user-1/respond", map[string]string{
		"action": "accept",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("respond status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/events/event-1/members", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	listed := decode[struct {
		Data []struct {
			UserID string `json:"user_id"`
			Status string `json:"status"`
		} `json:"data"`
	}](t, rec)
	if len(listed.Data) != 1 || listed.Data[0].Status != "accepted" {
		t.Fatalf("members = %+v", listed.Data)
	}
}

func TestPollRoutes(t *testing.T) {
	ts := newTestServer(t)
	ts.seedPollContext("event-1", "organizer-1", "voter-1", "voter-2")

	rec := ts.do(t, http.MethodPost, "/events/event-1/poll", pollhttp.CreatePollRequest{
		OrganizerID: "organizer-1",
		Options: []pollhttp.CreateOptionInput{
			{Label: "Rooftop"},
			{Label: "Park"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create poll status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decode[pollhttp.PollResponse](t, rec)
	if created.Data.Status != "open" || len(created.Data.Options) != 2 {
		t.Fatalf("poll = %+v", created.Data)
	}

	rec = ts.do(t, http.MethodPost, "/events/event-1/poll", pollhttp.CreatePollRequest{
		OrganizerID: "organizer-1",
		Options:     []pollhttp.CreateOptionInput{{Label: "Museum"}},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second poll status = %d", rec.Code)
	}

	target := created.Data.Options[0]
	rec = ts.do(t, http.MethodPost, "/events/event-1/poll/votes", pollhttp.SubmitVoteRequest{
		OptionID: target.ID,
		VoterID:  "voter-1",
	})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("vote status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodPost, "/events/event-1/poll/votes", pollhttp.SubmitVoteRequest{
		OptionID: target.ID,
		VoterID:  "stranger-1",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("stranger vote status = %d", rec.Code)
	}

	rec = ts.do(t, http.MethodPost, "/events/event-1/poll/close", pollhttp.ClosePollRequest{})
	if rec.Code != http.StatusOK {
		t.Fatalf("close status = %d, body %s", rec.Code, rec.Body.String())
	}
	closed := decode[pollhttp.PollResponse](t, rec)
	if closed.Data.Status != "closed" || closed.Data.WinnerOptionID != target.ID {
		t.Fatalf("closed poll = %+v", closed.Data)
	}

	rec = ts.do(t, http.MethodPost, "/events/event-1/poll/votes", pollhttp.SubmitVoteRequest{
		OptionID: target.ID,
		VoterID:  "voter-2",
	})
	if rec.Code != http.StatusGone {
		t.Fatalf("vote after close status = %d", rec.Code)
	}
	errResp := decode[pollhttp.ErrorResponse](t, rec)
	if errResp.Code != "poll_closed" {
		t.Fatalf("error code = %q", errResp.Code)
	}

	rec = ts.do(t, http.MethodGet, "/events/event-1/poll/results", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("results status = %d", rec.Code)
	}
	results := decode[pollhttp.ResultsResponse](t, rec)
	if results.Data.WinnerOptionID != target.ID {
		t.Fatalf("results winner = %q, want %q", results.Data.WinnerOptionID, target.ID)
	}
}

func TestPollRoutesTieBreak(t *testing.T) {
	ts := newTestServer(t)
	ts.seedPollContext("event-1", "organizer-1", "voter-1", "voter-2")

	rec := ts.do(t, http.MethodPost, "/events/event-1/poll", pollhttp.CreatePollRequest{
		OrganizerID: "organizer-1",
		Options: []pollhttp.CreateOptionInput{
			{Label: "Rooftop"},
			{Label: "Park"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create poll status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decode[pollhttp.PollResponse](t, rec)

	for i, voterID := range []string{"voter-1", "voter-2"} {
		rec = ts.do(t, http.MethodPost, "/events/event-1/poll/votes", pollhttp.SubmitVoteRequest{
			OptionID: created.Data.Options[i].ID,
			VoterID:  voterID,
		})
		if rec.Code != http.StatusAccepted {
			t.Fatalf("vote status = %d, body %s", rec.Code, rec.Body.String())
		}
	}

	rec = ts.do(t, http.MethodPost, "/events/event-1/poll/close", pollhttp.ClosePollRequest{})
	if rec.Code != http.StatusConflict {
		t.Fatalf("tied close status = %d, body %s", rec.Code, rec.Body.String())
	}
	errResp := decode[pollhttp.ErrorResponse](t, rec)
	if errResp.Code != "tie_break_required" {
		t.Fatalf("error code = %q", errResp.Code)
	}

	rec = ts.do(t, http.MethodPost, "/events/event-1/poll/close", pollhttp.ClosePollRequest{
		FinalOptionID: created.Data.Options[1].ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("tie-break close status = %d, body %s", rec.Code, rec.Body.String())
	}
	closed := decode[pollhttp.PollResponse](t, rec)
	if closed.Data.WinnerOptionID != created.Data.Options[1].ID {
		t.Fatalf("winner = %q", closed.Data.WinnerOptionID)
	}
}

func TestIdentityRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/identity/users", identityhttp.RegisterUserRequest{
		DisplayName: "Ada",
		Email:       "ada@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decode[identityhttp.UserResponse](t, rec)
	if created.Data.ID == "" || !created.Data.IsActive {
		t.Fatalf("user = %+v", created.Data)
	}

	rec = ts.do(t, http.MethodGet, "/identity/users/"+created.Data.ID+"/validate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("validate status = %d", rec.Code)
	}
	validation := decode[identityhttp.ValidationPayload](t, rec)
	if validation.UserID != created.Data.ID || !validation.IsActive {
		t.Fatalf("validation = %+v", validation)
	}

	rec = ts.do(t, http.MethodPost, "/identity/users/"+created.Data.ID+"/deactivate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate status = %d", rec.Code)
	}
	rec = ts.do(t, http.MethodGet, "/identity/users/"+created.Data.ID+"/validate", nil)
	validation = decode[identityhttp.ValidationPayload](t, rec)
	if validation.IsActive {
		t.Fatal("deactivated user still reported active")
	}

	rec = ts.do(t, http.MethodGet, "/identity/users/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown user status = %d", rec.Code)
	}
}
