package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/gesticasa/inmosuite/internal/auth/domain"
	"github.com/gesticasa/inmosuite/internal/auth/session"
	checkoutdomain "github.com/gesticasa/inmosuite/internal/checkout/domain"
	"github.com/gesticasa/inmosuite/internal/config"
	invitedomain "github.com/gesticasa/inmosuite/internal/invite/domain"
	tenantdomain "github.com/gesticasa/inmosuite/internal/tenant/domain"
	"github.com/gin-gonic/gin"
)

type fakeAuthService struct {
	loginErr    error
	loginCalls  int
	logoutCalls int
	sessions    map[string]*authdomain.Session
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	session := &authdomain.Session{
		ID:          snowflake.ID(1),
		TenantID:    snowflake.ID(100),
		TenantEmail: req.Email,
		ExpiresAt:   time.Now().Add(2 * time.Hour),
	}
	if f.sessions == nil {
		f.sessions = map[string]*authdomain.Session{}
	}
	f.sessions["session-token"] = session
	return &authdomain.LoginResult{
		Session:   session,
		RawToken:  "session-token",
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	f.logoutCalls++
	delete(f.sessions, rawToken)
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	if session, ok := f.sessions[rawToken]; ok {
		return session, nil
	}
	return nil, authdomain.ErrInvalidSession
}

type fakeCheckoutService struct {
	err error
}

func (f *fakeCheckoutService) CreateSession(ctx context.Context, req checkoutdomain.Request) (*checkoutdomain.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if req.Email == "" || req.Password == "" || req.OrganizationName == "" {
		return nil, checkoutdomain.ErrInvalidRequest
	}
	return &checkoutdomain.Result{
		SessionID:   "cs_test_123",
		RedirectURL: "https://checkout.stripe.com/pay/cs_test_123",
	}, nil
}

type fakeInviteService struct {
	inviteErr   error
	activateErr error
	lastInvite  invitedomain.InviteRequest
}

func (f *fakeInviteService) Invite(ctx context.Context, req invitedomain.InviteRequest) (*invitedomain.AgentInvite, error) {
	f.lastInvite = req
	if f.inviteErr != nil {
		return nil, f.inviteErr
	}
	return &invitedomain.AgentInvite{ID: snowflake.ID(2)}, nil
}

func (f *fakeInviteService) Activate(ctx context.Context, req invitedomain.ActivateRequest) error {
	return f.activateErr
}

type fakePaymentService struct {
	err   error
	calls int
}

func (f *fakePaymentService) IngestWebhook(ctx context.Context, payload []byte, headers http.Header) error {
	f.calls++
	return f.err
}

type fakeTenantService struct {
	provisionErr error
	lastReq      tenantdomain.ProvisionRequest
}

func (f *fakeTenantService) Provision(ctx context.Context, req tenantdomain.ProvisionRequest) (*tenantdomain.Tenant, error) {
	f.lastReq = req
	if f.provisionErr != nil {
		return nil, f.provisionErr
	}
	return &tenantdomain.Tenant{
		ID:        snowflake.ID(3),
		Subdomain: "acmerealty.gesticasa.com",
	}, nil
}

func (f *fakeTenantService) ProvisionAgent(ctx context.Context, req tenantdomain.ProvisionAgentRequest) (*tenantdomain.AgentAccount, error) {
	return nil, nil
}

func (f *fakeTenantService) FindByEmail(ctx context.Context, email string) (*tenantdomain.Tenant, error) {
	return nil, tenantdomain.ErrTenantNotFound
}

func (f *fakeTenantService) FindByID(ctx context.Context, id snowflake.ID) (*tenantdomain.Tenant, error) {
	return nil, tenantdomain.ErrTenantNotFound
}

type testServer struct {
	srv      *Server
	auth     *fakeAuthService
	checkout *fakeCheckoutService
	invites  *fakeInviteService
	payments *fakePaymentService
	tenants  *fakeTenantService
}

func newTestServer(t *testing.T, cfg config.Config) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		auth:     &fakeAuthService{},
		checkout: &fakeCheckoutService{},
		invites:  &fakeInviteService{},
		payments: &fakePaymentService{},
		tenants:  &fakeTenantService{},
	}

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	ts.srv = NewServer(ServerParams{
		Gin:         engine,
		Cfg:         cfg,
		Authsvc:     ts.auth,
		Sessions:    session.NewManager(cfg),
		CheckoutSvc: ts.checkout,
		InviteSvc:   ts.invites,
		PaymentSvc:  ts.payments,
		TenantSvc:   ts.tenants,
	})
	return ts
}

func (ts *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(resp, req)
	return resp
}

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{Name: session.DefaultCookieName, Value: value}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	resp := ts.do(http.MethodPost, "/login", `{"email":"owner@acme.example","password":"Secret123!"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var sid string
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == session.DefaultCookieName {
			sid = cookie.Value
			if !cookie.HttpOnly {
				t.Fatal("expected http-only session cookie")
			}
		}
	}
	if sid != "session-token" {
		t.Fatalf("expected session cookie, got %q", sid)
	}
}

func TestLoginInvalidCredentialsReturns400(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	ts.auth.loginErr = authdomain.ErrInvalidCredentials

	resp := ts.do(http.MethodPost, "/login", `{"email":"owner@acme.example","password":"wrong"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "invalid_credentials") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestLoginRateLimitedReturns429(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	ts.auth.loginErr = authdomain.ErrRateLimited

	resp := ts.do(http.MethodPost, "/login", `{"email":"owner@acme.example","password":"Secret123!"}`)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	// With no cookie at all.
	resp := ts.do(http.MethodPost, "/logout", ``)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without session, got %d", resp.Code)
	}

	// Twice with the same stale cookie.
	for i := 0; i < 2; i++ {
		resp = ts.do(http.MethodPost, "/logout", ``, sessionCookie("stale-token"))
		if resp.Code != http.StatusOK {
			t.Fatalf("logout %d: expected 200, got %d", i+1, resp.Code)
		}
	}
}

func TestCheckSession(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	ts.auth.sessions = map[string]*authdomain.Session{
		"session-token": {TenantID: snowflake.ID(100), ExpiresAt: time.Now().Add(time.Hour)},
	}

	resp := ts.do(http.MethodGet, "/check-session", ``, sessionCookie("session-token"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !body["loggedIn"] {
		t.Fatal("expected loggedIn true")
	}

	resp = ts.do(http.MethodGet, "/check-session", ``, sessionCookie("unknown"))
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["loggedIn"] {
		t.Fatal("expected loggedIn false for unknown token")
	}
}

func TestCreateCheckoutSessionReturnsURL(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	resp := ts.do(http.MethodPost, "/create-checkout-session",
		`{"email":"owner@acme.example","password":"Secret123!","organizationName":"Acme Realty"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["url"] != "https://checkout.stripe.com/pay/cs_test_123" {
		t.Fatalf("unexpected url %q", body["url"])
	}
}

func TestCreateCheckoutSessionUpstreamFailureReturns502(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	ts.checkout.err = checkoutdomain.ErrUpstream

	resp := ts.do(http.MethodPost, "/create-checkout-session",
		`{"email":"owner@acme.example","password":"Secret123!","organizationName":"Acme Realty"}`)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestWebhookAcknowledgesVerifiedDeliveries(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	resp := ts.do(http.MethodPost, "/webhook", `{"id":"evt_1"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"received":true`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if ts.payments.calls != 1 {
		t.Fatalf("expected 1 ingest call, got %d", ts.payments.calls)
	}
}

func TestInviteAgentRequiresSession(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	resp := ts.do(http.MethodPost, "/invite-agent", `{"email":"agent@acme.example"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	ts.auth.sessions = map[string]*authdomain.Session{
		"session-token": {TenantID: snowflake.ID(100), ExpiresAt: time.Now().Add(time.Hour)},
	}
	resp = ts.do(http.MethodPost, "/invite-agent", `{"email":"agent@acme.example"}`, sessionCookie("session-token"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ts.invites.lastInvite.TenantID != snowflake.ID(100) {
		t.Fatalf("expected invite bound to session tenant, got %v", ts.invites.lastInvite.TenantID)
	}
}

func TestInviteAgentQuotaReturns429(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	ts.auth.sessions = map[string]*authdomain.Session{
		"session-token": {TenantID: snowflake.ID(100), ExpiresAt: time.Now().Add(time.Hour)},
	}
	ts.invites.inviteErr = invitedomain.ErrQuotaExceeded

	resp := ts.do(http.MethodPost, "/invite-agent", `{"email":"agent@acme.example"}`, sessionCookie("session-token"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
}

func TestActivateInviteInvalidTokenReturns400(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	ts.invites.activateErr = invitedomain.ErrInvalidToken

	resp := ts.do(http.MethodPost, "/activate-invite", `{"token":"bogus","password":"Secret123!"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestRegisterGatedByPaymentRequired(t *testing.T) {
	ts := newTestServer(t, config.Config{PaymentRequired: true})

	resp := ts.do(http.MethodPost, "/register",
		`{"email":"owner@acme.example","password":"Secret123!","organizationName":"Acme Realty"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with payment gating on, got %d", resp.Code)
	}
}

func TestRegisterDirectlyProvisionsWhenUngated(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	resp := ts.do(http.MethodPost, "/register",
		`{"email":"owner@acme.example","password":"Secret123!","organizationName":"Acme Realty"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ts.tenants.lastReq.PasswordHash == "" || ts.tenants.lastReq.PasswordHash == "Secret123!" {
		t.Fatal("expected password to be hashed before provisioning")
	}

	ts.tenants.provisionErr = tenantdomain.ErrAlreadyProvisioned
	resp = ts.do(http.MethodPost, "/register",
		`{"email":"owner@acme.example","password":"Secret123!","organizationName":"Acme Realty"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate direct registration, got %d", resp.Code)
	}
}
