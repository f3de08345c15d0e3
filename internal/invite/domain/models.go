// Package domain contains agent invite types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusPending   = "PENDING"
	StatusActivated = "ACTIVATED"
)

// AgentInvite is keyed by invitee email: re-inviting the same address
// refreshes the row in place, so the previous token goes inert.
type AgentInvite struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	TenantID    snowflake.ID `gorm:"column:tenant_id;not null;index"`
	Email       string       `gorm:"type:text;not null;uniqueIndex"`
	TokenHash   string       `gorm:"column:token_hash;type:text;not null;uniqueIndex"`
	Status      string       `gorm:"type:text;not null;default:PENDING"`
	ExpiresAt   time.Time    `gorm:"not null"`
	ActivatedAt *time.Time
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AgentInvite) TableName() string { return "agent_invites" }
