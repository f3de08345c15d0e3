// Package webhook processes payment provider notifications and triggers
// tenant provisioning on confirmed checkouts.
package webhook

import (
	"context"
	"errors"
	"net/http"

	paymentdomain "github.com/gesticasa/inmosuite/internal/payment/domain"
	tenantdomain "github.com/gesticasa/inmosuite/internal/tenant/domain"
	"go.uber.org/zap"
)

type Service struct {
	log     *zap.Logger
	adapter paymentdomain.Adapter
	tenants tenantdomain.Service
}

func NewService(log *zap.Logger, adapter paymentdomain.Adapter, tenants tenantdomain.Service) paymentdomain.Service {
	return &Service{
		log:     log.Named("payment.webhook"),
		adapter: adapter,
		tenants: tenants,
	}
}

func (s *Service) IngestWebhook(ctx context.Context, payload []byte, headers http.Header) error {
	if err := s.adapter.Verify(ctx, payload, headers); err != nil {
		return err
	}

	event, err := s.adapter.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrEventIgnored) {
			// Unrelated event kinds are acknowledged without side effects.
			return nil
		}
		return err
	}

	_, err = s.tenants.Provision(ctx, tenantdomain.ProvisionRequest{
		Email:            event.Email,
		OrganizationName: event.OrganizationName,
		PasswordHash:     event.PasswordHash,
		Metadata: map[string]any{
			"stripe_event_id":   event.ProviderEventID,
			"stripe_session_id": event.SessionID,
		},
	})
	if errors.Is(err, tenantdomain.ErrAlreadyProvisioned) {
		// At-least-once delivery. The losing insert is the expected path
		// on redelivery, not a failure.
		s.log.Info("webhook redelivery ignored",
			zap.String("stripe_event_id", event.ProviderEventID),
		)
		return nil
	}
	if err != nil {
		s.log.Error("tenant provisioning failed",
			zap.String("stripe_event_id", event.ProviderEventID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
