package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gesticasa/inmosuite/internal/auth/password"
	"github.com/gesticasa/inmosuite/internal/config"
	"github.com/gesticasa/inmosuite/internal/invite/domain"
	"github.com/gesticasa/inmosuite/internal/providers/email"
	tenantdomain "github.com/gesticasa/inmosuite/internal/tenant/domain"
	"go.uber.org/zap"
)

const (
	inviteTokenBytes = 32
	inviteTTL        = 24 * time.Hour
	inviteQuota      = 20
)

type Service struct {
	log     *zap.Logger
	repo    domain.Repository
	tenants tenantdomain.Service
	mailer  email.Provider
	genID   *snowflake.Node
	baseURL string
}

func New(
	log *zap.Logger,
	repo domain.Repository,
	tenants tenantdomain.Service,
	mailer email.Provider,
	genID *snowflake.Node,
	cfg config.Config,
) domain.Service {
	return &Service{
		log:     log.Named("invite.service"),
		repo:    repo,
		tenants: tenants,
		mailer:  mailer,
		genID:   genID,
		baseURL: cfg.BaseURL,
	}
}

func (s *Service) Invite(ctx context.Context, req domain.InviteRequest) (*domain.AgentInvite, error) {
	if req.TenantID == 0 {
		return nil, domain.ErrInvalidRequest
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return nil, domain.ErrInvalidRequest
	}
	inviteeEmail := strings.ToLower(strings.TrimSpace(addr.Address))

	count, err := s.repo.CountForTenant(ctx, req.TenantID, inviteeEmail)
	if err != nil {
		return nil, err
	}
	if count >= inviteQuota {
		return nil, domain.ErrQuotaExceeded
	}

	rawToken, err := newInviteToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invite := &domain.AgentInvite{
		ID:        s.genID.Generate(),
		TenantID:  req.TenantID,
		Email:     inviteeEmail,
		TokenHash: hashToken(rawToken),
		Status:    domain.StatusPending,
		ExpiresAt: now.Add(inviteTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, invite); err != nil {
		return nil, err
	}

	if err := s.deliver(ctx, invite, rawToken); err != nil {
		// The token is already durable and stays valid; only the
		// delivery failed.
		s.log.Warn("invite delivery failed",
			zap.String("invite_id", invite.ID.String()),
			zap.Error(err),
		)
		return nil, domain.ErrDeliveryFailed
	}

	s.log.Info("agent invited",
		zap.String("invite_id", invite.ID.String()),
		zap.String("tenant_id", req.TenantID.String()),
	)
	return invite, nil
}

func (s *Service) Activate(ctx context.Context, req domain.ActivateRequest) error {
	token := strings.TrimSpace(req.Token)
	if token == "" || strings.TrimSpace(req.Password) == "" {
		return domain.ErrInvalidRequest
	}

	invite, err := s.repo.FindByTokenHash(ctx, hashToken(token))
	if err != nil {
		return err
	}
	if time.Now().UTC().After(invite.ExpiresAt) {
		return domain.ErrTokenExpired
	}

	if invite.Status == domain.StatusActivated {
		// Repeating the call succeeds without side effects.
		return nil
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return err
	}

	// The agent account is created before the invite flips; a storage
	// failure here leaves the invite PENDING so the activation stays
	// retryable.
	_, err = s.tenants.ProvisionAgent(ctx, tenantdomain.ProvisionAgentRequest{
		TenantID:     invite.TenantID,
		Email:        invite.Email,
		PasswordHash: passwordHash,
	})
	if err != nil && !errors.Is(err, tenantdomain.ErrAlreadyProvisioned) {
		return err
	}

	_, err = s.repo.MarkActivated(ctx, invite.ID)
	return err
}

func (s *Service) deliver(ctx context.Context, invite *domain.AgentInvite, rawToken string) error {
	tenant, err := s.tenants.FindByID(ctx, invite.TenantID)
	if err != nil {
		return err
	}

	inviteURL := s.baseURL + "/activate.html?token=" + url.QueryEscape(rawToken)
	body, err := email.RenderInvite(email.InviteData{
		OrganizationName: tenant.OrganizationName,
		InviteURL:        inviteURL,
	})
	if err != nil {
		return err
	}

	subject := "You're invited to join " + tenant.OrganizationName
	return s.mailer.Send(ctx, []string{invite.Email}, subject, body)
}

func newInviteToken() (string, error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
