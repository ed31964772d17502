package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	authorizer "github.com/localnerve/authorizer-go"
	"github.com/localnerve/coursemart/internal/utils"
)

// Authorizer validates the "cookie_session" cookie against an Authorizer service
type Authorizer struct {
	URL         string
	ClientID    string
	RedirectURL string
	Roles       []string

	mu     sync.Mutex
	client *authorizer.AuthorizerClient
}

// sessionUser is the part of the validated session user this service reads
type sessionUser struct {
	Email      string  `json:"email"`
	GivenName  *string `json:"given_name"`
	FamilyName *string `json:"family_name"`
	Nickname   *string `json:"nickname"`
}

// NewAuthorizer creates an Authorizer provider. The client is created on first use.
func NewAuthorizer(url, clientID, redirectURL string, roles []string) *Authorizer {
	return &Authorizer{
		URL:         url,
		ClientID:    clientID,
		RedirectURL: redirectURL,
		Roles:       roles,
	}
}

// init pings the Authorizer service and creates the client. Only a working
// client is kept, so a failed attempt is retried on the next request.
func (a *Authorizer) init(ctx context.Context) (*authorizer.AuthorizerClient, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	// A cancelled caller must not fail the ping; the dial is bounded by its own timeout
	if err := utils.PingAuthorizer(context.WithoutCancel(ctx), a.URL); err != nil {
		return nil, fmt.Errorf("authorizer ping failed: %w", err)
	}

	log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
		a.URL, a.ClientID, a.RedirectURL)

	client, err := authorizer.NewAuthorizerClient(a.ClientID, a.URL, a.RedirectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}
	a.client = client

	return client, nil
}

// CurrentIdentity validates the session cookie and returns the session user
func (a *Authorizer) CurrentIdentity(ctx context.Context, creds Credentials) (*Identity, error) {
	if creds.SessionCookie == "" {
		return nil, fmt.Errorf("authorizer cookie \"cookie_session\" not found: %w", ErrNoIdentity)
	}
	client, err := a.init(ctx)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrUnavailable)
	}

	// Convert roles to []*string
	rolesPtrs := make([]*string, len(a.Roles))
	for i := range a.Roles {
		rolesPtrs[i] = &a.Roles[i]
	}

	type result struct {
		valid bool
		user  interface{}
		err   error
	}
	done := make(chan result, 1)

	// The SDK call takes no context; bound it by ctx
	go func() {
		res, err := client.ValidateSession(&authorizer.ValidateSessionInput{
			Cookie: creds.SessionCookie,
			Roles:  rolesPtrs,
		})
		if err != nil || res == nil {
			done <- result{err: err}
			return
		}
		done <- result{valid: res.IsValid && res.User != nil, user: res.User}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("session validation: %v: %w", ctx.Err(), ErrUnavailable)
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("session validation failed: %v: %w", r.err, ErrNoIdentity)
		}
		if !r.valid {
			return nil, fmt.Errorf("session is not valid: %w", ErrNoIdentity)
		}
		return toIdentity(r.user)
	}
}

// toIdentity reads the session user through its JSON form
func toIdentity(user interface{}) (*Identity, error) {
	b, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("session user: %v: %w", err, ErrNoIdentity)
	}
	var su sessionUser
	if err := json.Unmarshal(b, &su); err != nil {
		return nil, fmt.Errorf("session user: %v: %w", err, ErrNoIdentity)
	}
	if su.Email == "" {
		return nil, fmt.Errorf("session user has no email: %w", ErrNoIdentity)
	}

	return &Identity{Email: su.Email, DisplayName: displayName(su)}, nil
}

func displayName(su sessionUser) string {
	var parts []string
	for _, p := range []*string{su.GivenName, su.FamilyName} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if su.Nickname != nil && *su.Nickname != "" {
		return *su.Nickname
	}
	return su.Email
}
