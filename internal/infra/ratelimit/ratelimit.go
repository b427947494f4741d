// Package ratelimit keeps one token bucket per client key.
package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// PerKey hands out token buckets per key. Buckets of idle keys are dropped
// after ttl, the least recently used ones first when size is reached.
type PerKey struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	visitors *expirable.LRU[string, *rate.Limiter]
}

func NewPerKey(rps, burst, size int, ttl time.Duration) *PerKey {
	return &PerKey{
		limit:    rate.Limit(rps),
		burst:    burst,
		visitors: expirable.NewLRU[string, *rate.Limiter](size, nil, ttl),
	}
}

func (p *PerKey) Allow(key string) bool {
	p.mu.Lock()
	lim, ok := p.visitors.Get(key)
	if !ok {
		lim = rate.NewLimiter(p.limit, p.burst)
		p.visitors.Add(key, lim)
	}
	p.mu.Unlock()

	return lim.Allow()
}
