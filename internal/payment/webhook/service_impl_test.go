package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gesticasa/inmosuite/internal/config"
	"github.com/gesticasa/inmosuite/internal/payment/adapters/stripe"
	paymentdomain "github.com/gesticasa/inmosuite/internal/payment/domain"
	tenantdomain "github.com/gesticasa/inmosuite/internal/tenant/domain"
	tenantrepo "github.com/gesticasa/inmosuite/internal/tenant/repository"
	tenantservice "github.com/gesticasa/inmosuite/internal/tenant/service"
	dbpkg "github.com/gesticasa/inmosuite/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecret = "whsec_test"

func newTestWebhook(t *testing.T) (paymentdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := dbpkg.NewTest()
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	if err := db.AutoMigrate(&tenantdomain.Tenant{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create id generator: %v", err)
	}

	cfg := config.Config{SubdomainSuffix: "gesticasa.com"}
	tenants := tenantservice.New(tenantrepo.New(db), node, cfg, zap.NewNop())

	adapter, err := stripe.NewAdapter(testSecret)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	return NewService(zap.NewNop(), adapter, tenants), db
}

func sign(payload []byte) http.Header {
	timestamp := "1735689600"
	mac := hmac.New(sha256.New, []byte(testSecret))
	_, _ = mac.Write([]byte(fmt.Sprintf("%s.%s", timestamp, payload)))

	headers := http.Header{}
	headers.Set("Stripe-Signature", fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil))))
	return headers
}

func completedCheckout() []byte {
	return []byte(`{
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
}

func TestIngestWebhookProvisionsTenant(t *testing.T) {
	svc, db := newTestWebhook(t)

	payload := completedCheckout()
	if err := svc.IngestWebhook(context.Background(), payload, sign(payload)); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	var tenant tenantdomain.Tenant
	if err := db.Where("email = ?", "owner@acme.example").First(&tenant).Error; err != nil {
		t.Fatalf("expected tenant row: %v", err)
	}
	if tenant.Subdomain != "acmerealty.gesticasa.com" {
		t.Fatalf("unexpected subdomain %q", tenant.Subdomain)
	}
	if tenant.Metadata["stripe_session_id"] != "cs_test_123" {
		t.Fatalf("expected checkout session in metadata, got %v", tenant.Metadata)
	}
}

func TestIngestWebhookRedeliveryIsAcknowledged(t *testing.T) {
	svc, db := newTestWebhook(t)

	payload := completedCheckout()
	for i := 0; i < 3; i++ {
		if err := svc.IngestWebhook(context.Background(), payload, sign(payload)); err != nil {
			t.Fatalf("delivery %d failed: %v", i+1, err)
		}
	}

	var count int64
	if err := db.Model(&tenantdomain.Tenant{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count tenants: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 tenant after redeliveries, got %d", count)
	}
}

func TestIngestWebhookRejectsBadSignature(t *testing.T) {
	svc, db := newTestWebhook(t)

	payload := completedCheckout()
	headers := http.Header{}
	headers.Set("Stripe-Signature", "t=1735689600,v1=deadbeef")

	err := svc.IngestWebhook(context.Background(), payload, headers)
	if !errors.Is(err, paymentdomain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	var count int64
	if err := db.Model(&tenantdomain.Tenant{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count tenants: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no side effects on rejected delivery, got %d rows", count)
	}
}

func TestIngestWebhookAcknowledgesUnrelatedEvents(t *testing.T) {
	svc, db := newTestWebhook(t)

	payload := []byte(`{"id":"evt_2","type":"invoice.paid","data":{"object":{"id":"in_1"}}}`)
	if err := svc.IngestWebhook(context.Background(), payload, sign(payload)); err != nil {
		t.Fatalf("expected unrelated event to be acknowledged, got %v", err)
	}

	var count int64
	if err := db.Model(&tenantdomain.Tenant{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count tenants: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no tenants, got %d", count)
	}
}
