// Package identity resolves the caller of a request to an email address through
// an external identity provider. The service never stores credentials itself.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/coursemart/internal/config"
)

var (
	// ErrNoIdentity means the request carries no valid credentials
	ErrNoIdentity = errors.New("no identity")
	// ErrUnavailable means the provider could not be reached in time
	ErrUnavailable = errors.New("identity provider unavailable")
)

// Identity is who the caller is, as vouched for by the provider
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Credentials are the request artifacts a provider may inspect
type Credentials struct {
	SessionCookie string
	BearerToken   string
}

// Provider resolves credentials to an identity. Implementations return
// ErrNoIdentity for missing or rejected credentials and ErrUnavailable
// when the provider itself fails.
type Provider interface {
	CurrentIdentity(ctx context.Context, creds Credentials) (*Identity, error)
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(ctx context.Context, creds Credentials) (*Identity, error)

// CurrentIdentity calls f
func (f ProviderFunc) CurrentIdentity(ctx context.Context, creds Credentials) (*Identity, error) {
	return f(ctx, creds)
}

// New builds the provider selected by IDENTITY_PROVIDER
func New(cfg *config.Config) (Provider, error) {
	switch cfg.IdentityProvider {
	case config.IdentityAuthorizer:
		return NewAuthorizer(cfg.AuthzURL, cfg.AuthzClientID, cfg.APIBaseURL, cfg.AuthzRoles), nil
	case config.IdentityJWT:
		return NewJWT([]byte(cfg.JWTSecret), cfg.JWTIssuer), nil
	}
	return nil, fmt.Errorf("unsupported identity provider: %s", cfg.IdentityProvider)
}
