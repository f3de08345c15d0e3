package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	// Upsert writes the invite keyed on email: an existing row for the
	// same address is refreshed in place, never duplicated.
	Upsert(ctx context.Context, invite *AgentInvite) error

	FindByTokenHash(ctx context.Context, tokenHash string) (*AgentInvite, error)

	// CountForTenant counts the tenant's invites, skipping excludeEmail
	// so a refresh of an existing invite never trips the quota.
	CountForTenant(ctx context.Context, tenantID snowflake.ID, excludeEmail string) (int64, error)

	// MarkActivated transitions pending to activated and reports whether
	// this call performed the transition.
	MarkActivated(ctx context.Context, id snowflake.ID) (bool, error)
}
