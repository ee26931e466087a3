package introspection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIntrospectActive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "wallet-api", user)
		assert.Equal(t, "s3cret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-token", r.PostForm.Get("token"))
		assert.Equal(t, "access_token", r.PostForm.Get("token_type_hint"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"active":true,"sub":"client-9","client_id":"portal","scope":"wallets:read","exp":1700000000}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "wallet-api", "s3cret", nil)
	result, err := client.Introspect(context.Background(), "the-token")

	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, "client-9", result.Sub)
	assert.Equal(t, "portal", result.ClientID)
	assert.Equal(t, []string{"wallets:read"}, result.ScopeList())
	assert.Equal(t, int64(1700000000), result.Exp)
}

func TestClientIntrospectInactive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"active":false}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "wallet-api", "s3cret", nil)
	result, err := client.Introspect(context.Background(), "revoked")

	require.NoError(t, err)
	assert.False(t, result.Active)
}

func TestClientIntrospectServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "wallet-api", "s3cret", nil)
	_, err := client.Introspect(context.Background(), "tok")
	assert.Error(t, err)
}

func TestClientIntrospectMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "wallet-api", "s3cret", nil)
	_, err := client.Introspect(context.Background(), "tok")
	assert.Error(t, err)
}

func TestClientIntrospectUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "wallet-api", "s3cret", nil)
	_, err := client.Introspect(context.Background(), "tok")
	assert.Error(t, err)
}

func TestClientIntrospectHonoursContextCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	client := NewClient(server.URL, "wallet-api", "s3cret", nil)
	_, err := client.Introspect(ctx, "tok")
	assert.Error(t, err)
}
