package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by bearer tokens
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWT validates HS256 bearer tokens signed with a shared secret
type JWT struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWT creates a bearer token provider. An empty issuer accepts any issuer.
func NewJWT(secret []byte, issuer string) *JWT {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &JWT{secret: secret, parser: jwt.NewParser(opts...)}
}

// CurrentIdentity parses and verifies the bearer token
func (j *JWT) CurrentIdentity(ctx context.Context, creds Credentials) (*Identity, error) {
	if creds.BearerToken == "" {
		return nil, fmt.Errorf("bearer token not found: %w", ErrNoIdentity)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrUnavailable)
	}

	claims := &Claims{}
	_, err := j.parser.ParseWithClaims(creds.BearerToken, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v: %w", err, ErrNoIdentity)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("token has no email claim: %w", ErrNoIdentity)
	}

	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	return &Identity{Email: claims.Email, DisplayName: name}, nil
}

// Sign issues a token for the identity. Used by tooling and tests.
func (j *JWT) Sign(id Identity, claims jwt.RegisteredClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email:            id.Email,
		Name:             id.DisplayName,
		RegisteredClaims: claims,
	})
	return token.SignedString(j.secret)
}
