package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gesticasa/inmosuite/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyLoginAttempt = "login:attempt:%s"

	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
)

// LoginLimiter bounds failed-or-not login attempts per client identity
// within a fixed window.
type LoginLimiter struct {
	counter Counter
	log     *zap.Logger
}

func NewLoginLimiter(cfg config.Config, log *zap.Logger) *LoginLimiter {
	var counter Counter
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.RedisPassword,
		})
		counter = NewRedisCounter(client)
	} else {
		counter = NewMemoryCounter()
	}

	return &LoginLimiter{
		counter: counter,
		log:     log.Named("ratelimit.login"),
	}
}

// Allow records one attempt for the client and reports whether it still
// falls inside the window's budget. Counter failures fail open so an
// unreachable redis cannot lock every tenant out.
func (l *LoginLimiter) Allow(ctx context.Context, clientIdentity string) bool {
	identity := strings.TrimSpace(clientIdentity)
	if identity == "" {
		identity = "unknown"
	}

	count, err := l.counter.Incr(ctx, fmt.Sprintf(keyLoginAttempt, identity), loginWindow)
	if err != nil {
		l.log.Warn("login rate limit check failed", zap.Error(err))
		return true
	}
	return count <= loginMaxAttempts
}
