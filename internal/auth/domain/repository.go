package domain

import "context"

type SessionRepository interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	// DeleteSessionByTokenHash removes the session if present. Deleting a
	// missing row is not an error.
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error
}
