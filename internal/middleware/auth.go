package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/coursemart/internal/identity"
	"github.com/localnerve/coursemart/internal/types"
)

const identityKey = "identity"

// AuthUser requires a caller identity from the provider and stores it in context
func AuthUser(provider identity.Provider, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, provider, timeout, true)
	}
}

// OptionalUser resolves the caller identity when credentials are present.
// Requests without credentials continue anonymously.
func OptionalUser(provider identity.Provider, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, provider, timeout, false)
	}
}

// CurrentIdentity returns the identity stored by AuthUser or OptionalUser, or nil
func CurrentIdentity(c *fiber.Ctx) *identity.Identity {
	id, _ := c.Locals(identityKey).(*identity.Identity)
	return id
}

// credentials collects the session cookie and bearer token from the request
func credentials(c *fiber.Ctx) identity.Credentials {
	creds := identity.Credentials{SessionCookie: c.Cookies("cookie_session")}
	if auth := c.Get(fiber.HeaderAuthorization); len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		creds.BearerToken = strings.TrimSpace(auth[7:])
	}
	return creds
}

// authorize performs the identity check
func authorize(c *fiber.Ctx, provider identity.Provider, timeout time.Duration, required bool) error {
	creds := credentials(c)
	if !required && creds.SessionCookie == "" && creds.BearerToken == "" {
		return c.Next()
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
	defer cancel()

	id, err := provider.CurrentIdentity(ctx, creds)
	if err != nil {
		if errors.Is(err, identity.ErrUnavailable) {
			return &types.CustomError{
				Code:    fiber.StatusServiceUnavailable,
				Message: fmt.Sprintf("Identity provider unavailable: %v", err),
				Type:    "identity.unavailable",
				Err:     err,
			}
		}
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    "authorization.identity",
			Err:     types.ErrUnauthorized,
		}
	}

	c.Locals(identityKey, id)

	return c.Next()
}
