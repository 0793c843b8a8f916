package cache

import (
	"context"
)

// Gate is an advisory capacity gate: a single increment-if-below-limit
// counter that narrows the read-then-write race on globally capped rewards.
// It is advisory only — the database count stays authoritative, and a nil or
// unreachable gate degrades to allowing, never to blocking.
type Gate struct {
	cache Cache
}

// NewGate creates a capacity gate over a cache. A nil cache yields a gate
// that always admits.
func NewGate(cache Cache) *Gate {
	return &Gate{cache: cache}
}

// Acquire reserves one slot under key if the counter stays at or below
// limit. seed initializes the counter from the authoritative store the first
// time the key is seen. On cache failure the gate admits and returns the
// error so the caller can log it; concurrent submissions are never blocked.
func (g *Gate) Acquire(ctx context.Context, key string, limit, seed int64) (bool, error) {
	if g == nil || g.cache == nil {
		return true, nil
	}

	if _, err := g.cache.SetNX(ctx, key, seed, 0); err != nil {
		return true, err
	}

	n, err := g.cache.Incr(ctx, key)
	if err != nil {
		return true, err
	}
	if n > limit {
		_, _ = g.cache.Decr(ctx, key)
		return false, nil
	}
	return true, nil
}

// Release undoes a reservation after a failed grant.
func (g *Gate) Release(ctx context.Context, key string) {
	if g == nil || g.cache == nil {
		return
	}
	_, _ = g.cache.Decr(ctx, key)
}
