package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"testing"

	paymentdomain "github.com/gesticasa/inmosuite/internal/payment/domain"
)

const testSecret = "whsec_test"

func signedHeaders(t *testing.T, payload []byte) http.Header {
	t.Helper()

	timestamp := "1735689600"
	mac := hmac.New(sha256.New, []byte(testSecret))
	_, _ = mac.Write([]byte(fmt.Sprintf("%s.%s", timestamp, payload)))
	signature := hex.EncodeToString(mac.Sum(nil))

	headers := http.Header{}
	headers.Set("Stripe-Signature", fmt.Sprintf("t=%s,v1=%s", timestamp, signature))
	return headers
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	adapter, err := NewAdapter(testSecret)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	if err := adapter.Verify(context.Background(), payload, signedHeaders(t, payload)); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	adapter, err := NewAdapter(testSecret)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	payload := []byte(`{"id":"evt_1"}`)
	headers := signedHeaders(t, payload)

	err = adapter.Verify(context.Background(), []byte(`{"id":"evt_2"}`), headers)
	if !errors.Is(err, paymentdomain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyRejectsMissingOrMalformedHeader(t *testing.T) {
	adapter, err := NewAdapter(testSecret)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	cases := []string{"", "garbage", "t=123", "v1=abc"}
	for _, header := range cases {
		headers := http.Header{}
		if header != "" {
			headers.Set("Stripe-Signature", header)
		}
		err := adapter.Verify(context.Background(), []byte(`{}`), headers)
		if !errors.Is(err, paymentdomain.ErrInvalidSignature) {
			t.Fatalf("header %q: expected ErrInvalidSignature, got %v", header, err)
		}
	}
}

func TestParseCompletedCheckout(t *testing.T) {
	adapter, err := NewAdapter(testSecret)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_123",
			"metadata": {
				"email": "owner@acme.example",
				"password_hash": "$argon2id$fake",
				"organization_name": "Acme Realty"
			}
		}}
	}`)

	event, err := adapter.Parse(context.Background(), payload)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if event.Email != "owner@acme.example" {
		t.Fatalf("unexpected email %q", event.Email)
	}
	if event.OrganizationName != "Acme Realty" {
		t.Fatalf("unexpected organization %q", event.OrganizationName)
	}
	if event.SessionID != "cs_test_123" {
		t.Fatalf("unexpected session id %q", event.SessionID)
	}
}

func TestParseIgnoresOtherEventKinds(t *testing.T) {
	adapter, err := NewAdapter(testSecret)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	payload := []byte(`{"id":"evt_1","type":"invoice.paid","data":{"object":{"id":"in_1"}}}`)
	_, err = adapter.Parse(context.Background(), payload)
	if !errors.Is(err, paymentdomain.ErrEventIgnored) {
		t.Fatalf("expected ErrEventIgnored, got %v", err)
	}
}

func TestParseRejectsIncompleteMetadata(t *testing.T) {
	adapter, err := NewAdapter(testSecret)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_123", "metadata": {"email": "owner@acme.example"}}}
	}`)
	_, err = adapter.Parse(context.Background(), payload)
	if !errors.Is(err, paymentdomain.ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}
