package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gesticasa/inmosuite/internal/config"
	"github.com/gesticasa/inmosuite/internal/tenant/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type service struct {
	repo            domain.Repository
	genID           *snowflake.Node
	log             *zap.Logger
	subdomainSuffix string
}

func New(repo domain.Repository, genID *snowflake.Node, cfg config.Config, log *zap.Logger) domain.Service {
	return &service{
		repo:            repo,
		genID:           genID,
		log:             log,
		subdomainSuffix: cfg.SubdomainSuffix,
	}
}

func (s *service) Provision(ctx context.Context, req domain.ProvisionRequest) (*domain.Tenant, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	orgName := strings.TrimSpace(req.OrganizationName)
	if email == "" || orgName == "" || req.PasswordHash == "" {
		return nil, domain.ErrInvalidRequest
	}

	if domain.NormalizeOrganizationName(orgName) == "" {
		return nil, domain.ErrInvalidRequest
	}

	tenant := &domain.Tenant{
		ID:               s.genID.Generate(),
		Email:            email,
		OrganizationName: orgName,
		Subdomain:        domain.DeriveSubdomain(orgName, s.subdomainSuffix),
		PasswordHash:     req.PasswordHash,
		Metadata:         datatypes.JSONMap(req.Metadata),
	}

	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	s.log.Info("tenant provisioned",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("subdomain", tenant.Subdomain),
	)
	return tenant, nil
}

func (s *service) ProvisionAgent(ctx context.Context, req domain.ProvisionAgentRequest) (*domain.AgentAccount, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.PasswordHash == "" || req.TenantID == 0 {
		return nil, domain.ErrInvalidRequest
	}

	agent := &domain.AgentAccount{
		ID:           s.genID.Generate(),
		TenantID:     req.TenantID,
		Email:        email,
		PasswordHash: req.PasswordHash,
	}

	if err := s.repo.CreateAgent(ctx, agent); err != nil {
		return nil, err
	}

	s.log.Info("agent account provisioned",
		zap.String("agent_id", agent.ID.String()),
		zap.String("tenant_id", req.TenantID.String()),
	)
	return agent, nil
}

func (s *service) FindByEmail(ctx context.Context, email string) (*domain.Tenant, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) FindByID(ctx context.Context, id snowflake.ID) (*domain.Tenant, error) {
	return s.repo.FindByID(ctx, id)
}
