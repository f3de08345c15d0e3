package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gesticasa/inmosuite/internal/invite/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Upsert(ctx context.Context, invite *domain.AgentInvite) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]any{
			"tenant_id":    invite.TenantID,
			"token_hash":   invite.TokenHash,
			"status":       domain.StatusPending,
			"expires_at":   invite.ExpiresAt,
			"activated_at": nil,
			"updated_at":   time.Now().UTC(),
		}),
	}).Create(invite).Error
}

func (r *repo) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.AgentInvite, error) {
	var invite domain.AgentInvite
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *repo) CountForTenant(ctx context.Context, tenantID snowflake.ID, excludeEmail string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.AgentInvite{}).
		Where("tenant_id = ? AND email <> ?", tenantID, excludeEmail).
		Count(&count).Error
	return count, err
}

func (r *repo) MarkActivated(ctx context.Context, id snowflake.ID) (bool, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.AgentInvite{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(map[string]any{
			"status":       domain.StatusActivated,
			"activated_at": now,
			"updated_at":   now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
