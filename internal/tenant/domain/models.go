// Package domain contains core types for tenant provisioning.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Tenant is a paying organization's account. Rows are written exactly once,
// by webhook-confirmed provisioning (or direct registration when payment
// gating is off), and never updated or deleted here.
type Tenant struct {
	ID               snowflake.ID      `gorm:"primaryKey"`
	Email            string            `gorm:"type:text;not null;uniqueIndex"`
	OrganizationName string            `gorm:"column:organization_name;type:text;not null;uniqueIndex"`
	Subdomain        string            `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash     string            `gorm:"column:password_hash;type:text;not null"`
	Metadata         datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }

// AgentAccount is a secondary account under a tenant, created when an invite
// token is activated.
type AgentAccount struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	TenantID     snowflake.ID `gorm:"column:tenant_id;not null;index"`
	Email        string       `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string       `gorm:"column:password_hash;type:text;not null"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AgentAccount) TableName() string { return "agent_accounts" }
