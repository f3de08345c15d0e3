package domain

import (
	"context"
	"time"
)

type Service interface {
	// Login verifies credentials against the tenant store and mints a new
	// session. Attempts are rate limited per client; exceeding the limit
	// fails with ErrRateLimited before any credential check.
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)

	// Logout destroys the session for the raw token. Destroying an absent
	// session is a success, so repeated logouts are safe.
	Logout(ctx context.Context, rawToken string) error

	// Authenticate resolves a raw token to its unexpired session without
	// mutating anything.
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
}

type LoginRequest struct {
	Email    string
	Password string
	// ClientIdentity keys the rate limiter, typically the client IP.
	ClientIdentity string
}

type LoginResult struct {
	Session   *Session
	RawToken  string
	ExpiresAt time.Time
}
