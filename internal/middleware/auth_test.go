package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/coursemart/internal/identity"
	"github.com/localnerve/coursemart/internal/middleware"
	"github.com/localnerve/coursemart/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			ce := types.Classify(err)
			return c.Status(ce.Code).SendString(ce.Type)
		},
	})
	app.Get("/", handler, func(c *fiber.Ctx) error {
		if id := middleware.CurrentIdentity(c); id != nil {
			return c.SendString(id.Email)
		}
		return c.SendString("anonymous")
	})
	return app
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestAuthUser(t *testing.T) {
	var seen identity.Credentials
	provider := identity.ProviderFunc(func(ctx context.Context, creds identity.Credentials) (*identity.Identity, error) {
		seen = creds
		if creds.SessionCookie == "good" || creds.BearerToken == "good" {
			return &identity.Identity{Email: "sam@example.com"}, nil
		}
		return nil, identity.ErrNoIdentity
	})
	app := newApp(middleware.AuthUser(provider, time.Second))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", "cookie_session=good")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sam@example.com", body(t, resp))
	assert.Equal(t, "good", seen.SessionCookie)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "bearer good")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "good", seen.BearerToken)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "authorization.identity", body(t, resp))

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthUserUnavailable(t *testing.T) {
	provider := identity.ProviderFunc(func(ctx context.Context, creds identity.Credentials) (*identity.Identity, error) {
		<-ctx.Done()
		return nil, errors.Join(identity.ErrUnavailable, ctx.Err())
	})
	app := newApp(middleware.AuthUser(provider, 20*time.Millisecond))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer slow")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "identity.unavailable", body(t, resp))
}

func TestOptionalUser(t *testing.T) {
	calls := 0
	provider := identity.ProviderFunc(func(ctx context.Context, creds identity.Credentials) (*identity.Identity, error) {
		calls++
		return nil, identity.ErrNoIdentity
	})
	app := newApp(middleware.OptionalUser(provider, time.Second))

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "anonymous", body(t, resp))
	assert.Zero(t, calls)

	// Credentials that are present must be valid
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer expired")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestRequestDeadline(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.RequestDeadline(50*time.Millisecond), func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		if !ok || time.Until(deadline) > 50*time.Millisecond {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestVersionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", middleware.VersionMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, middleware.APIVersion, resp.Header.Get("X-Api-Version"))
	assert.Equal(t, "1.0.0", body(t, resp))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Api-Version", "v1.0")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", body(t, resp))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Api-Version", "2.0.0")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
