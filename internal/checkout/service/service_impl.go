package service

import (
	"context"
	"net/mail"
	"net/url"
	"strings"

	"github.com/gesticasa/inmosuite/internal/auth/password"
	"github.com/gesticasa/inmosuite/internal/checkout/domain"
	"github.com/gesticasa/inmosuite/internal/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type service struct {
	log     *zap.Logger
	stripe  *stripeClient
	priceID string
	baseURL string
}

func New(cfg config.Config, log *zap.Logger) domain.Service {
	return &service{
		log:     log.Named("checkout.service"),
		stripe:  newStripeClient(cfg.StripeSecretKey),
		priceID: cfg.StripePriceID,
		baseURL: cfg.BaseURL,
	}
}

func (s *service) CreateSession(ctx context.Context, req domain.Request) (*domain.Result, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	orgName := strings.TrimSpace(req.OrganizationName)
	if email == "" || strings.TrimSpace(req.Password) == "" || orgName == "" {
		return nil, domain.ErrInvalidRequest
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidRequest
	}

	// The metadata crosses a third party and comes back on the webhook.
	// Only the hash travels; the cleartext password dies with this request.
	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("mode", "subscription")
	values.Set("line_items[0][price]", s.priceID)
	values.Set("line_items[0][quantity]", "1")
	values.Set("customer_email", email)
	values.Set("success_url", s.baseURL+"/success.html")
	values.Set("cancel_url", s.baseURL+"/cancel.html")
	values.Set("metadata[email]", email)
	values.Set("metadata[password_hash]", passwordHash)
	values.Set("metadata[organization_name]", orgName)

	session, err := s.stripe.createCheckoutSession(ctx, values, uuid.NewString())
	if err != nil {
		s.log.Warn("checkout session create failed", zap.Error(err))
		return nil, domain.ErrUpstream
	}

	s.log.Info("checkout session created", zap.String("session_id", session.ID))
	return &domain.Result{
		SessionID:   session.ID,
		RedirectURL: session.URL,
	}, nil
}
