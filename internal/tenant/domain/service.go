package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Provision inserts the tenant row exactly once. Redelivery or a
	// concurrent duplicate returns ErrAlreadyProvisioned.
	Provision(ctx context.Context, req ProvisionRequest) (*Tenant, error)

	// ProvisionAgent creates a secondary account keyed on the invitee email,
	// under the same create-if-absent contract.
	ProvisionAgent(ctx context.Context, req ProvisionAgentRequest) (*AgentAccount, error)

	FindByEmail(ctx context.Context, email string) (*Tenant, error)
	FindByID(ctx context.Context, id snowflake.ID) (*Tenant, error)
}

type ProvisionRequest struct {
	Email            string
	OrganizationName string
	// PasswordHash is the already-hashed secret. Cleartext never reaches
	// the tenant store.
	PasswordHash string
	Metadata     map[string]any
}

type ProvisionAgentRequest struct {
	TenantID     snowflake.ID
	Email        string
	PasswordHash string
}
