// Package cache is the process-wide response cache: a key to JSON value map with optional expiry,
// loaded lazily from a Store and written back once when the owner flushes or closes it.
package cache

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/nrkcat/nrkcat/log"
	"golang.org/x/sync/singleflight"
)

// Common lifetimes.
const (
	Hour = time.Hour
	Day  = 24 * Hour
	Week = 7 * Day
)

// Entry is one stored value. A nil ExpiresAt never expires.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

func (e Entry) expired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}

// Store persists the whole entry map as a single blob.
type Store interface {
	Load() (map[string]Entry, error)
	Save(entries map[string]Entry) error
}

// Stats is a point-in-time summary of the cache.
type Stats struct {
	Entries  int
	Expired  int
	Hits     int
	Misses   int
	Disabled bool
}

// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	store    Store
	entries  map[string]Entry
	loaded   bool
	disabled bool
	closed   bool
	now      func() time.Time
	hits     int
	misses   int

	inflight singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, mostly for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// Disabled builds the cache already in pass-through mode.
func Disabled() Option {
	return func(c *Cache) {
		c.disabled = true
	}
}

// New returns a cache backed by store. Nothing is read until the first Get or Set.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// materialize must be called with mu held.
func (c *Cache) materialize() {
	if c.loaded || c.disabled {
		return
	}
	c.loaded = true

	entries, err := c.store.Load()
	if err != nil {
		log.Warnf("cache: load failed, starting empty: %v", err)
		entries = nil
	}
	if entries == nil {
		entries = make(map[string]Entry)
	}
	c.entries = entries
	log.Debugf("cache: materialized %d entries", len(entries))
}

func (c *Cache) lookup(key string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.materialize()
	if c.disabled {
		return nil, false
	}

	entry, ok := c.entries[key]
	if !ok || entry.expired(c.now()) {
		return nil, false
	}
	return entry.Value, true
}

func (c *Cache) count(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

func (c *Cache) put(key string, value json.RawMessage, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.materialize()
	if c.disabled {
		return
	}

	entry := Entry{Value: value}
	if ttl > 0 {
		eol := c.now().Add(ttl)
		entry.ExpiresAt = &eol
	}
	c.entries[key] = entry
}

// Get decodes the value stored under key. The flag is false when there is no entry,
// the entry has expired, the cache is disabled, or the stored value does not decode into T.
// Expired entries are left in place.
func Get[T any](c *Cache, key string) (T, bool) {
	value, ok := decode[T](c, key)
	c.count(ok)
	return value, ok
}

// decode is Get without touching the hit counters.
func decode[T any](c *Cache, key string) (T, bool) {
	var value T

	raw, ok := c.lookup(key)
	if !ok {
		return value, false
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warnf("cache: dropping undecodable value for %q: %v", key, err)
		var zero T
		return zero, false
	}

	return value, true
}

// Set stores value under key. A ttl of zero never expires. No-op while disabled.
func Set[T any](c *Cache, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.put(key, raw, ttl)
	return nil
}

// Remember returns the cached value for key, or runs load, stores its result with ttl and returns it.
// Concurrent callers missing on the same key share a single load. Failed loads are not stored.
//
// The shared load runs detached from any one caller's cancellation; a caller whose ctx
// ends stops waiting and gets ctx.Err() while the others still receive the result.
func Remember[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if value, ok := Get[T](c, key); ok {
		return value, nil
	}

	shared := context.WithoutCancel(ctx)
	results := c.inflight.DoChan(key, func() (any, error) {
		if value, ok := decode[T](c, key); ok {
			return value, nil
		}

		value, err := load(shared)
		if err != nil {
			return nil, err
		}

		if err := Set(c, key, value, ttl); err != nil {
			log.Warnf("cache: not storing %q: %v", key, err)
		}
		return value, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.materialize()
	delete(c.entries, key)
}

// Keys lists the live keys in lexical order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.materialize()
	now := c.now()
	keys := make([]string, 0, len(c.entries))
	for k, e := range c.entries {
		if !e.expired(now) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Stats materializes the cache and reports its contents and hit counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.materialize()
	stats := Stats{
		Hits:     c.hits,
		Misses:   c.misses,
		Disabled: c.disabled,
	}

	now := c.now()
	for _, e := range c.entries {
		if e.expired(now) {
			stats.Expired++
		} else {
			stats.Entries++
		}
	}
	return stats
}

// Disable drops all in-memory state and turns the cache into a pass-through for the rest
// of its life: every Get misses, every Set is ignored, Flush writes nothing.
func (c *Cache) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	c.disabled = true
}

// Flush writes every unexpired entry to the store. It does nothing when the cache
// was never materialized or has been disabled.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded || c.disabled {
		return nil
	}

	now := c.now()
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}

	log.Debugf("cache: persisting %d entries", len(c.entries))
	return c.store.Save(c.entries)
}

// Close flushes once. Later calls return nil.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.Flush()
}
