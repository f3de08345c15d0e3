// Package domain contains payment webhook types.
package domain

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrInvalidPayload   = errors.New("invalid_payload")
	ErrInvalidEvent     = errors.New("invalid_event")
	// ErrEventIgnored marks event kinds this system does not act on. The
	// webhook still acknowledges them.
	ErrEventIgnored = errors.New("event_ignored")
)

// CheckoutEvent is the registration data recovered from a completed
// checkout's metadata.
type CheckoutEvent struct {
	ProviderEventID  string
	SessionID        string
	Email            string
	PasswordHash     string
	OrganizationName string
}

// Adapter verifies and parses a provider's webhook payloads.
type Adapter interface {
	Verify(ctx context.Context, payload []byte, headers http.Header) error
	Parse(ctx context.Context, payload []byte) (*CheckoutEvent, error)
}

// Service ingests webhook deliveries end to end.
type Service interface {
	// IngestWebhook verifies the delivery and, for completed checkouts,
	// provisions the tenant. Redeliveries and ignored event kinds return
	// nil so the caller acknowledges them.
	IngestWebhook(ctx context.Context, payload []byte, headers http.Header) error
}
