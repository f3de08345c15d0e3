package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gesticasa/inmosuite/internal/auth/domain"
	"github.com/gesticasa/inmosuite/internal/auth/password"
	"github.com/gesticasa/inmosuite/internal/ratelimit"
	tenantdomain "github.com/gesticasa/inmosuite/internal/tenant/domain"
	"go.uber.org/zap"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 2 * time.Hour
)

// decoyHash is verified against when the email is unknown, so both failure
// paths cost one argon2 pass and stay indistinguishable.
var decoyHash = func() string {
	h, err := password.Hash("decoy")
	if err != nil {
		panic(err)
	}
	return h
}()

type Service struct {
	log         *zap.Logger
	tenants     tenantdomain.Service
	sessionRepo domain.SessionRepository
	limiter     *ratelimit.LoginLimiter
	genID       *snowflake.Node
}

func New(
	log *zap.Logger,
	tenants tenantdomain.Service,
	sessionRepo domain.SessionRepository,
	limiter *ratelimit.LoginLimiter,
	genID *snowflake.Node,
) domain.Service {
	return &Service{
		log:         log.Named("auth.service"),
		tenants:     tenants,
		sessionRepo: sessionRepo,
		limiter:     limiter,
		genID:       genID,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	if !s.limiter.Allow(ctx, req.ClientIdentity) {
		return nil, domain.ErrRateLimited
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	tenant, err := s.tenants.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, tenantdomain.ErrTenantNotFound) {
			password.Verify(req.Password, decoyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, tenant.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		TenantID:         tenant.ID,
		TenantEmail:      tenant.Email,
		SessionTokenHash: hashToken(rawToken),
		ExpiresAt:        now.Add(sessionTTL),
		CreatedAt:        now,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("session created", zap.String("tenant_id", tenant.ID.String()))

	return &domain.LoginResult{
		Session:   session,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteSessionByTokenHash(ctx, hashToken(token))
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	if time.Now().UTC().After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
