package adapter

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	m "github.com/natepiano/brp-mutate/internal/model"
)

// DefaultCacheSize bounds the number of cached registry snapshots.
const DefaultCacheSize = 8

// CachedClient wraps a BRPClient with an LRU snapshot cache keyed by
// endpoint, so repeated analyses within one process skip the registry
// round-trip. Mutation calls pass straight through.
type CachedClient struct {
	inner BRPClient
	cache *lru.Cache[string, *m.Snapshot]
}

// NewCachedClient wraps inner with a cache of the given size; zero or
// negative selects the default.
func NewCachedClient(inner BRPClient, size int) (*CachedClient, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[string, *m.Snapshot](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry cache: %w", err)
	}

	return &CachedClient{inner: inner, cache: cache}, nil
}

// FetchSnapshot returns the cached snapshot for this endpoint when
// present.
func (c *CachedClient) FetchSnapshot(ctx context.Context) (*m.Snapshot, error) {
	if snapshot, ok := c.cache.Get(c.inner.Endpoint()); ok {
		return snapshot, nil
	}

	snapshot, err := c.inner.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Add(c.inner.Endpoint(), snapshot)

	return snapshot, nil
}

// Invalidate drops the cached snapshot for this endpoint.
func (c *CachedClient) Invalidate() {
	c.cache.Remove(c.inner.Endpoint())
}

// MutateComponent passes through to the wrapped client.
func (c *CachedClient) MutateComponent(ctx context.Context, entity uint64, component m.TypeName, path string, value any) error {
	return c.inner.MutateComponent(ctx, entity, component, path, value)
}

// MutateResource passes through to the wrapped client.
func (c *CachedClient) MutateResource(ctx context.Context, resource m.TypeName, path string, value any) error {
	return c.inner.MutateResource(ctx, resource, path, value)
}

// Endpoint passes through to the wrapped client.
func (c *CachedClient) Endpoint() string {
	return c.inner.Endpoint()
}

// Close passes through to the wrapped client.
func (c *CachedClient) Close() error {
	return c.inner.Close()
}
