package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowState struct {
	count   int64
	startAt time.Time
}

// memoryCounter is a per-process fixed window counter for deployments
// without redis. Counts are not shared across processes.
type memoryCounter struct {
	mu      sync.Mutex
	windows map[string]windowState
	now     func() time.Time
}

func NewMemoryCounter() Counter {
	return &memoryCounter{
		windows: make(map[string]windowState),
		now:     time.Now,
	}
}

func (c *memoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	state, ok := c.windows[key]
	if !ok || now.Sub(state.startAt) >= window {
		state = windowState{startAt: now}
	}
	state.count++
	c.windows[key] = state

	// Drop aged-out windows opportunistically so the map stays bounded.
	if len(c.windows) > 4096 {
		for k, s := range c.windows {
			if now.Sub(s.startAt) >= window {
				delete(c.windows, k)
			}
		}
	}
	return state.count, nil
}
