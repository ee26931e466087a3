package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kobzev/LykkeWalletAPI/internal/auth/introspection"
)

type fakeProvider struct {
	principal *Principal
	err       error
	calls     int
}

func (f *fakeProvider) CurrentPrincipal(_ context.Context, _ string) (*Principal, error) {
	f.calls++
	return f.principal, f.err
}

type fakeVerifier struct {
	result introspection.Result
	err    error
	calls  int
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (introspection.Result, error) {
	f.calls++
	return f.result, f.err
}

func newTestGate(provider *fakeProvider, verifier *fakeVerifier) *Gate {
	return NewGate(Classifier{InternalTokenLength: 64}, provider, verifier, zap.NewNop())
}

func bearer(token string) string {
	return "Bearer " + token
}

func TestGateNoHeaderInvokesNothing(t *testing.T) {
	provider := &fakeProvider{}
	verifier := &fakeVerifier{}
	gate := newTestGate(provider, verifier)

	outcome := gate.Authenticate(context.Background(), "")

	assert.Equal(t, StatusNoResult, outcome.Status)
	assert.Zero(t, provider.calls)
	assert.Zero(t, verifier.calls)
}

func TestGateInternalTokenOnlyHitsProvider(t *testing.T) {
	provider := &fakeProvider{principal: &Principal{ClientID: "abc-123"}}
	verifier := &fakeVerifier{}
	gate := newTestGate(provider, verifier)

	outcome := gate.Authenticate(context.Background(), bearer(strings.Repeat("x", 64)))

	require.True(t, outcome.Authenticated())
	assert.Equal(t, "abc-123", outcome.Principal.ClientID)
	assert.Equal(t, SchemeLykkeSession, outcome.Principal.Scheme)
	assert.Equal(t, 1, provider.calls)
	assert.Zero(t, verifier.calls)
}

func TestGateInternalTokenProviderMiss(t *testing.T) {
	provider := &fakeProvider{}
	verifier := &fakeVerifier{}
	gate := newTestGate(provider, verifier)

	outcome := gate.Authenticate(context.Background(), bearer(strings.Repeat("x", 64)))

	assert.Equal(t, StatusNoResult, outcome.Status)
	assert.False(t, outcome.Authenticated())
	assert.Equal(t, 1, provider.calls)
	assert.Zero(t, verifier.calls)
}

func TestGateInternalTokenProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("session service down")}
	verifier := &fakeVerifier{}
	gate := newTestGate(provider, verifier)

	outcome := gate.Authenticate(context.Background(), bearer(strings.Repeat("x", 64)))

	assert.Equal(t, StatusFailure, outcome.Status)
	assert.False(t, outcome.Authenticated())
	assert.Error(t, outcome.Err)
}

func TestGateExternalTokenOnlyHitsVerifier(t *testing.T) {
	provider := &fakeProvider{}
	verifier := &fakeVerifier{result: introspection.Result{
		Active: true,
		Sub:    "client-9",
		Scope:  "wallets:read wallets:write",
	}}
	gate := newTestGate(provider, verifier)

	outcome := gate.Authenticate(context.Background(), bearer("shorttoken"))

	require.True(t, outcome.Authenticated())
	assert.Equal(t, "client-9", outcome.Principal.Subject)
	assert.Equal(t, "client-9", outcome.Principal.ClientID)
	assert.Equal(t, []string{"wallets:read", "wallets:write"}, outcome.Principal.Scopes)
	assert.Equal(t, SchemeIntrospection, outcome.Principal.Scheme)
	assert.Zero(t, provider.calls)
	assert.Equal(t, 1, verifier.calls)
}

func TestGateExternalTokenInactive(t *testing.T) {
	provider := &fakeProvider{}
	verifier := &fakeVerifier{result: introspection.Result{Active: false}}
	gate := newTestGate(provider, verifier)

	outcome := gate.Authenticate(context.Background(), bearer("shorttoken"))

	assert.Equal(t, StatusNoResult, outcome.Status)
	assert.Zero(t, provider.calls)
	assert.Equal(t, 1, verifier.calls)
}

func TestGateExternalTokenVerifierErrorIsNeverSuccess(t *testing.T) {
	provider := &fakeProvider{}
	verifier := &fakeVerifier{err: errors.New("introspection endpoint unreachable")}
	gate := newTestGate(provider, verifier)

	outcome := gate.Authenticate(context.Background(), bearer("shorttoken"))

	assert.Equal(t, StatusFailure, outcome.Status)
	assert.False(t, outcome.Authenticated())
	assert.Zero(t, provider.calls)
}

func TestGatePrefersClientIDClaim(t *testing.T) {
	verifier := &fakeVerifier{result: introspection.Result{
		Active:   true,
		Sub:      "subject-1",
		ClientID: "hft-client",
	}}
	gate := newTestGate(&fakeProvider{}, verifier)

	outcome := gate.Authenticate(context.Background(), bearer("tok"))

	require.True(t, outcome.Authenticated())
	assert.Equal(t, "hft-client", outcome.Principal.ClientID)
	assert.Equal(t, "subject-1", outcome.Principal.Subject)
}

func TestGateTokenAtInternalLengthNeverIntrospected(t *testing.T) {
	// Any 64-character token goes to the session path, even one that
	// looks like it might be an OAuth token.
	provider := &fakeProvider{}
	verifier := &fakeVerifier{result: introspection.Result{Active: true, Sub: "x"}}
	gate := newTestGate(provider, verifier)

	gate.Authenticate(context.Background(), bearer(strings.Repeat("e", 64)))

	assert.Equal(t, 1, provider.calls)
	assert.Zero(t, verifier.calls)
}
