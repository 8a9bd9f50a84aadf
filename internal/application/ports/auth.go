package ports

import (
	"context"
	"time"

	"eduxchange/internal/domain/account"
	"eduxchange/internal/infrastructure/jwt"
)

// TokenVerifier resolves a bearer token to its claims, revoked tokens included.
type TokenVerifier interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

type Auth interface {
	TokenVerifier
	SignUp(ctx context.Context, email, password, fullName string) (*account.Account, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, claims *jwt.Claims) error
}

type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
