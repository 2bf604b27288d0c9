package statuscache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FailurePolicy decides what waiters get when a recompute fails.
type FailurePolicy int

const (
	// PropagateError returns the same compute error to every
	// single-flight waiter. Nothing is cached.
	PropagateError FailurePolicy = iota
	// FailOpen serves the last good (possibly stale) value when a
	// recompute fails. Falls back to the error when there is none.
	FailOpen
)

type entry[V any] struct {
	value      V
	computedAt time.Time
	expiresAt  time.Time
}

// Cache is a read-through TTL cache with per-key single-flight
// recomputation. The clock is injected so tests control time.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]

	ttl    time.Duration
	policy FailurePolicy
	clock  func() time.Time

	group singleflight.Group

	janitor     *time.Ticker
	stopJanitor chan struct{}
	stopOnce    sync.Once
}

// Stale entries are kept around for fail-open, but not forever.
const staleRetention = time.Hour

func New[V any](ttl time.Duration, policy FailurePolicy) *Cache[V] {
	c := NewWithClock[V](ttl, policy, time.Now)

	c.janitor = time.NewTicker(ttl)
	go c.cleanup()

	return c
}

// NewWithClock builds a cache without the cleanup goroutine, with time
// supplied by clock. Meant for tests.
func NewWithClock[V any](ttl time.Duration, policy FailurePolicy, clock func() time.Time) *Cache[V] {
	return &Cache[V]{
		entries:     make(map[string]entry[V]),
		ttl:         ttl,
		policy:      policy,
		clock:       clock,
		stopJanitor: make(chan struct{}),
	}
}

func (c *Cache[V]) cleanup() {
	for {
		select {
		case <-c.janitor.C:
			c.evictExpired()
		case <-c.stopJanitor:
			c.janitor.Stop()
			return
		}
	}
}

func (c *Cache[V]) evictExpired() {
	now := c.clock()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if !now.After(e.expiresAt) {
			continue
		}
		if c.policy == FailOpen && now.Sub(e.expiresAt) < staleRetention {
			continue // keep as last-good fallback
		}
		delete(c.entries, key)
	}
}

// Stop stops the cleanup goroutine.
func (c *Cache[V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopJanitor)
	})
}

type flightResult[V any] struct {
	value V
}

// Get returns the cached value for key, or runs compute through a
// per-key single flight and caches the result for the configured TTL.
// The second return reports whether this was a fresh cache hit.
//
// Waiters joined on another caller's in-flight compute are released
// when their own ctx is done, they never hang on a stuck compute.
func (c *Cache[V]) Get(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, bool, error) {
	now := c.clock()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && now.Before(e.expiresAt) {
		return e.value, true, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		val, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		computedAt := c.clock()
		c.mu.Lock()
		// value and expiry land together, readers never see a half
		// written entry
		c.entries[key] = entry[V]{
			value:      val,
			computedAt: computedAt,
			expiresAt:  computedAt.Add(c.ttl),
		}
		c.mu.Unlock()

		return flightResult[V]{value: val}, nil
	})

	var zero V

	select {
	case res := <-ch:
		if res.Err != nil {
			if c.policy == FailOpen {
				if stale, ok := c.lastGood(key); ok {
					return stale, false, nil
				}
			}
			return zero, false, res.Err
		}
		return res.Val.(flightResult[V]).value, false, nil

	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

// lastGood returns the stored value for key even if expired.
func (c *Cache[V]) lastGood(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return e.value, ok
}

// Invalidate drops a key, the next Get recomputes.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
