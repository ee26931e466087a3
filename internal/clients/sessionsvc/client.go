// Package sessionsvc is the HTTP client for the legacy session service,
// which maps 64-character session tokens to exchange clients.
package sessionsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kobzev/LykkeWalletAPI/internal/auth"
)

// sessionResponse is the session service's payload for a live session.
type sessionResponse struct {
	ClientID  string `json:"clientId"`
	PartnerID string `json:"partnerId"`
}

// Client resolves legacy session tokens against the session service.
// It implements auth.PrincipalProvider.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the service at baseURL. httpClient may
// be nil, in which case a default client with a 10s timeout is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// CurrentPrincipal asks the session service for the client behind
// token. An unknown or expired session yields (nil, nil).
func (c *Client) CurrentPrincipal(ctx context.Context, token string) (*auth.Principal, error) {
	endpoint := c.baseURL + "/api/sessions/" + url.PathEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session service request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("session service returned status %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	if session.ClientID == "" {
		return nil, nil
	}

	return &auth.Principal{
		ClientID:  session.ClientID,
		PartnerID: session.PartnerID,
		Scheme:    auth.SchemeLykkeSession,
	}, nil
}
