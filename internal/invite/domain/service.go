package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Invite creates or refreshes the invite row for the email and mails
	// the invite link. A repeated invite supersedes the prior token.
	Invite(ctx context.Context, req InviteRequest) (*AgentInvite, error)

	// Activate consumes a token: it flips the invite to activated and
	// creates the agent account. Re-activating an already-activated
	// invite is a no-op success.
	Activate(ctx context.Context, req ActivateRequest) error
}

type InviteRequest struct {
	TenantID snowflake.ID
	Email    string
}

type ActivateRequest struct {
	Token    string
	Password string
}
