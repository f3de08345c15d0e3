package payment

import (
	"context"
	"net/http"

	"github.com/gesticasa/inmosuite/internal/config"
	"github.com/gesticasa/inmosuite/internal/payment/adapters/stripe"
	paymentdomain "github.com/gesticasa/inmosuite/internal/payment/domain"
	"github.com/gesticasa/inmosuite/internal/payment/webhook"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.webhook",
	fx.Provide(newAdapter),
	fx.Provide(webhook.NewService),
)

func newAdapter(cfg config.Config) (paymentdomain.Adapter, error) {
	if cfg.StripeWebhookSecret == "" && !cfg.PaymentRequired {
		// Direct-registration deployments run without a payment
		// provider; the webhook endpoint rejects everything.
		return disabledAdapter{}, nil
	}
	return stripe.NewAdapter(cfg.StripeWebhookSecret)
}

type disabledAdapter struct{}

func (disabledAdapter) Verify(context.Context, []byte, http.Header) error {
	return paymentdomain.ErrInvalidSignature
}

func (disabledAdapter) Parse(context.Context, []byte) (*paymentdomain.CheckoutEvent, error) {
	return nil, paymentdomain.ErrInvalidPayload
}
