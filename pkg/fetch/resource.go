// Package fetch provides stale-while-revalidate resources for the TUI. A
// Resource exposes the last loaded data, whether a load is in flight, and a
// Mutate command that reloads it.
package fetch

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/otto8-ai/otto-admin/internal/logger"
)

const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = time.Minute
	DefaultTimeout   = 30 * time.Second
)

// Fetcher loads the data behind a resource
type Fetcher[T any] func(ctx context.Context) (T, error)

// Cache is shared by every resource of a program. Loads of the same key that
// overlap are collapsed into one request.
type Cache struct {
	group singleflight.Group
	lru   *expirable.LRU[string, any]
}

// NewCache creates a cache holding up to size entries for ttl
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		lru: expirable.NewLRU[string, any](size, nil, ttl),
	}
}

// Invalidate drops the cached value for key
func (c *Cache) Invalidate(key string) {
	c.lru.Remove(key)
}

func (c *Cache) get(key string) (any, bool) {
	return c.lru.Get(key)
}

func (c *Cache) load(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, v)
		return v, nil
	})
	return v, err
}

// LoadedMsg carries the outcome of a Mutate
type LoadedMsg struct {
	Key  string
	Seq  uint64
	Data any
	Err  error
}

// Resource is the client-side view of one remote collection or object
type Resource[T any] struct {
	cache   *Cache
	key     string
	fetch   Fetcher[T]
	timeout time.Duration

	data    T
	hasData bool
	loading bool
	err     error
	seq     uint64
}

// NewResource creates a resource for key. Cached data for key, if any, is
// available immediately.
func NewResource[T any](cache *Cache, key string, fetch Fetcher[T]) *Resource[T] {
	r := &Resource[T]{cache: cache, timeout: DefaultTimeout}
	r.SetKey(key, fetch)
	return r
}

// SetTimeout bounds each load
func (r *Resource[T]) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// SetKey points the resource at a different request, e.g. another page. Data
// cached for the new key is shown right away; otherwise the resource is empty
// until the next load completes.
func (r *Resource[T]) SetKey(key string, fetch Fetcher[T]) {
	r.key = key
	r.fetch = fetch
	r.err = nil
	r.loading = false

	var zero T
	r.data, r.hasData = zero, false
	if v, ok := r.cache.get(key); ok {
		if typed, ok := v.(T); ok {
			r.data, r.hasData = typed, true
		}
	}
}

func (r *Resource[T]) Key() string { return r.key }

// Data returns the last loaded value and whether there is one
func (r *Resource[T]) Data() (T, bool) {
	return r.data, r.hasData
}

// IsLoading reports whether a load is in flight
func (r *Resource[T]) IsLoading() bool {
	return r.loading
}

// Err returns the error of the last load, if it failed
func (r *Resource[T]) Err() error {
	return r.err
}

// Mutate reloads the resource. The returned command performs the request and
// yields a LoadedMsg; pass it to Handle.
func (r *Resource[T]) Mutate() tea.Cmd {
	r.loading = true
	r.seq++

	key, seq, fetch, timeout, cache := r.key, r.seq, r.fetch, r.timeout, r.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		v, err := cache.load(ctx, key, func(ctx context.Context) (any, error) {
			return fetch(ctx)
		})
		if err != nil {
			logger.Debug("Resource load failed", "key", key, "error", err)
			return LoadedMsg{Key: key, Seq: seq, Err: err}
		}
		return LoadedMsg{Key: key, Seq: seq, Data: v}
	}
}

// Handle applies msg if it answers the latest Mutate of this resource. Replies
// to superseded requests are dropped. It reports whether msg was applied.
func (r *Resource[T]) Handle(msg LoadedMsg) bool {
	if msg.Key != r.key || msg.Seq != r.seq {
		return false
	}
	r.loading = false

	if msg.Err != nil {
		r.err = msg.Err
		return true
	}

	typed, ok := msg.Data.(T)
	if !ok {
		r.err = fmt.Errorf("unexpected data type %T for %s", msg.Data, msg.Key)
		return true
	}
	r.data, r.hasData, r.err = typed, true, nil
	return true
}
