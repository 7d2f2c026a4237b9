package identityadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainerrors "gatherly/contexts/event-planning/poll-lifecycle/domain/errors"
	"gatherly/contexts/event-planning/poll-lifecycle/ports"
)

const defaultVerifyTimeout = 3 * time.Second

// Client verifies organizer identities against the identity service over
// HTTP. Every call is bounded by Timeout; deadline expiry and transport
// failure map to distinct sentinel errors so the API can answer 504 vs 503.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Timeout time.Duration
	Logger  *slog.Logger
}

type validateResponse struct {
	UserID   string `json:"user_id"`
	IsActive bool   `json:"is_active"`
}

func (c *Client) VerifyActive(ctx context.Context, userID string) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := strings.TrimRight(c.BaseURL, "/") + "/identity/users/" + url.PathEscape(strings.TrimSpace(userID)) + "/validate"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domainerrors.ErrIdentityUnavailable
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logFailure("identity_verify_timeout", userID, err)
			return domainerrors.ErrIdentityTimeout
		}
		c.logFailure("identity_verify_unreachable", userID, err)
		return domainerrors.ErrIdentityUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var body validateResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			c.logFailure("identity_verify_decode_failed", userID, err)
			return domainerrors.ErrIdentityUnavailable
		}
		if !body.IsActive {
			return domainerrors.ErrOrganizerInactive
		}
		return nil
	case http.StatusNotFound:
		// Unknown users cannot organize polls; same outcome as inactive.
		return domainerrors.ErrOrganizerInactive
	default:
		c.logFailure("identity_verify_bad_status", userID, errors.New(resp.Status))
		return domainerrors.ErrIdentityUnavailable
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) logFailure(event string, userID string, err error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("identity verification failed",
		"event", event,
		"module", "event-planning/poll-lifecycle",
		"layer", "adapter",
		"user_id", strings.TrimSpace(userID),
		"error", err.Error(),
	)
}

var _ ports.IdentityVerifier = (*Client)(nil)
