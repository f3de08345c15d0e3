package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gesticasa/inmosuite/internal/tenant/domain"
	dbpkg "github.com/gesticasa/inmosuite/pkg/db"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, tenant *domain.Tenant) error {
	err := r.db.WithContext(ctx).Create(tenant).Error
	if dbpkg.IsDuplicateKeyErr(err) {
		return domain.ErrAlreadyProvisioned
	}
	return err
}

func (r *repo) FindByEmail(ctx context.Context, email string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *repo) CreateAgent(ctx context.Context, agent *domain.AgentAccount) error {
	err := r.db.WithContext(ctx).Create(agent).Error
	if dbpkg.IsDuplicateKeyErr(err) {
		return domain.ErrAlreadyProvisioned
	}
	return err
}
