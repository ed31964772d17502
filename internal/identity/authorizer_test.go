package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/localnerve/coursemart/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizerRequiresCookie(t *testing.T) {
	p := identity.NewAuthorizer("http://127.0.0.1:1", "client", "http://localhost", []string{"user"})

	_, err := p.CurrentIdentity(context.Background(), identity.Credentials{BearerToken: "x"})
	assert.ErrorIs(t, err, identity.ErrNoIdentity)
}

func TestAuthorizerUnreachable(t *testing.T) {
	// Port 1 on loopback refuses connections
	p := identity.NewAuthorizer("http://127.0.0.1:1", "client", "http://localhost", []string{"user"})

	_, err := p.CurrentIdentity(context.Background(), identity.Credentials{SessionCookie: "session"})
	assert.ErrorIs(t, err, identity.ErrUnavailable)
}

// newSessionServer answers every session validation with an authorization error
func newSessionServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"unauthorized"}],"data":null}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthorizerRetriesAfterOutage(t *testing.T) {
	srv := newSessionServer(t)
	creds := identity.Credentials{SessionCookie: "session"}
	p := identity.NewAuthorizer("http://127.0.0.1:1", "client", "http://localhost", []string{"user"})

	_, err := p.CurrentIdentity(context.Background(), creds)
	assert.ErrorIs(t, err, identity.ErrUnavailable)

	// Service is back; the next request pings again and reaches session validation
	p.URL = srv.URL
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = p.CurrentIdentity(ctx, creds)
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrNoIdentity)
	assert.NotErrorIs(t, err, identity.ErrUnavailable)
}

func TestAuthorizerCancelledFirstRequest(t *testing.T) {
	srv := newSessionServer(t)
	creds := identity.Credentials{SessionCookie: "session"}
	p := identity.NewAuthorizer(srv.URL, "client", "http://localhost", []string{"user"})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.CurrentIdentity(cancelled, creds)
	require.Error(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = p.CurrentIdentity(ctx, creds)
	assert.ErrorIs(t, err, identity.ErrNoIdentity)
	assert.NotErrorIs(t, err, identity.ErrUnavailable)
}
