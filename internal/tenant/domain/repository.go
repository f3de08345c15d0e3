package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	// Create is a single transactional insert. A unique-constraint conflict
	// on email, organization name or subdomain yields ErrAlreadyProvisioned.
	Create(ctx context.Context, tenant *Tenant) error
	FindByEmail(ctx context.Context, email string) (*Tenant, error)
	FindByID(ctx context.Context, id snowflake.ID) (*Tenant, error)

	CreateAgent(ctx context.Context, agent *AgentAccount) error
}
