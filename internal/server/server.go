package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gesticasa/inmosuite/internal/auth"
	authdomain "github.com/gesticasa/inmosuite/internal/auth/domain"
	"github.com/gesticasa/inmosuite/internal/auth/session"
	"github.com/gesticasa/inmosuite/internal/checkout"
	checkoutdomain "github.com/gesticasa/inmosuite/internal/checkout/domain"
	"github.com/gesticasa/inmosuite/internal/config"
	"github.com/gesticasa/inmosuite/internal/invite"
	invitedomain "github.com/gesticasa/inmosuite/internal/invite/domain"
	"github.com/gesticasa/inmosuite/internal/observability"
	obslogger "github.com/gesticasa/inmosuite/internal/observability/logger"
	obsmetrics "github.com/gesticasa/inmosuite/internal/observability/metrics"
	obstracing "github.com/gesticasa/inmosuite/internal/observability/tracing"
	"github.com/gesticasa/inmosuite/internal/payment"
	paymentdomain "github.com/gesticasa/inmosuite/internal/payment/domain"
	"github.com/gesticasa/inmosuite/internal/providers/email"
	"github.com/gesticasa/inmosuite/internal/ratelimit"
	"github.com/gesticasa/inmosuite/internal/tenant"
	tenantdomain "github.com/gesticasa/inmosuite/internal/tenant/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	checkout.Module,
	email.Module,
	invite.Module,
	payment.Module,
	ratelimit.Module,
	tenant.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, log *zap.Logger) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, log *zap.Logger) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics, log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	authsvc     authdomain.Service
	sessions    *session.Manager
	checkoutsvc checkoutdomain.Service
	invitesvc   invitedomain.Service
	paymentsvc  paymentdomain.Service
	tenantsvc   tenantdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Authsvc     authdomain.Service
	Sessions    *session.Manager
	CheckoutSvc checkoutdomain.Service
	InviteSvc   invitedomain.Service
	PaymentSvc  paymentdomain.Service
	TenantSvc   tenantdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		authsvc:     p.Authsvc,
		sessions:    p.Sessions,
		checkoutsvc: p.CheckoutSvc,
		invitesvc:   p.InviteSvc,
		paymentsvc:  p.PaymentSvc,
		tenantsvc:   p.TenantSvc,
	}

	svc.registerRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.POST("/create-checkout-session", s.CreateCheckoutSession)
	s.engine.POST("/webhook", s.HandleWebhook)
	s.engine.POST("/register", s.Register)

	s.engine.POST("/login", s.Login)
	s.engine.POST("/logout", s.Logout)
	s.engine.GET("/check-session", s.CheckSession)

	s.engine.POST("/invite-agent", s.AuthRequired(), s.InviteAgent)
	s.engine.POST("/activate-invite", s.ActivateInvite)
}
