package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InviteMemberRequest struct {
	UserID    string `json:"user_id"`
	InvitedBy string `json:"invited_by"`
}

type RespondRequest struct {
	Action string `json:"action"`
}

type MemberPayload struct {
	EventID   string     `json:"event_id"`
	UserID    string     `json:"user_id"`
	Status    string     `json:"status"`
	InvitedBy string     `json:"invited_by"`
	InvitedAt time.Time  `json:"invited_at"`
	JoinedAt  *time.Time `json:"joined_at,omitempty"`
}

type MemberResponse struct {
	Data MemberPayload `json:"data"`
}

type MemberListResponse struct {
	Data []MemberPayload `json:"data"`
}
