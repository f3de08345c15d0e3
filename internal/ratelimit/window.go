package ratelimit

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// fixedWindowScript counts hits in the current window and stamps the window
// TTL on first hit. Returns the count after this hit.
const fixedWindowScript = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`

// Counter counts events per key within a fixed time window.
type Counter interface {
	// Incr records one hit for key and returns the hit count inside the
	// current window, including this one.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisCounter struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisCounter(client *redis.Client) Counter {
	return &redisCounter{
		client: client,
		script: redis.NewScript(fixedWindowScript),
	}
}

func (c *redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if key == "" {
		return 0, errors.New("rate limiter key is empty")
	}
	return c.script.Run(ctx, c.client, []string{key}, int64(window/time.Millisecond)).Int64()
}
