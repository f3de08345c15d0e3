// Package domain contains session authentication types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Session is a server-side login session. The raw token lives only in the
// client cookie; rows store a sha256 digest of it.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	TenantID         snowflake.ID `gorm:"column:tenant_id;not null;index"`
	TenantEmail      string       `gorm:"column:tenant_email;type:text;not null"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	ExpiresAt        time.Time    `gorm:"not null"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
