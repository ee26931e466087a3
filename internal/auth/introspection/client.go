// Package introspection implements RFC 7662 token introspection with a
// local result cache.
package introspection

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kobzev/LykkeWalletAPI/pkg/metrics"
)

// Result is the subset of the RFC 7662 introspection response the
// gateway consumes. Inactive results carry only Active=false.
type Result struct {
	Active    bool   `json:"active"`
	Sub       string `json:"sub,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
	Scope     string `json:"scope,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	Exp       int64  `json:"exp,omitempty"`
	Iat       int64  `json:"iat,omitempty"`
	Iss       string `json:"iss,omitempty"`
}

// ScopeList splits the space-delimited scope claim.
func (r Result) ScopeList() []string {
	if r.Scope == "" {
		return nil
	}
	return strings.Fields(r.Scope)
}

// Introspector asks an authorization server whether a token is active
// and what claims it carries.
type Introspector interface {
	Introspect(ctx context.Context, token string) (Result, error)
}

// Client performs live introspection calls against the configured
// endpoint, authenticating with HTTP basic client credentials.
type Client struct {
	endpoint     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// NewClient creates a Client. httpClient may be nil, in which case a
// default client with a 10s timeout is used.
func NewClient(endpoint, clientID, clientSecret string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		endpoint:     endpoint,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
	}
}

// Introspect implements Introspector with one POST to the endpoint.
// Any transport or protocol failure is returned as an error; callers
// must never treat an error as an active token.
func (c *Client) Introspect(ctx context.Context, token string) (Result, error) {
	form := url.Values{}
	form.Set("token", token)
	form.Set("token_type_hint", "access_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("build introspection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("introspection request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.IntrospectionLatency.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("introspection endpoint returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode introspection response: %w", err)
	}
	return result, nil
}
