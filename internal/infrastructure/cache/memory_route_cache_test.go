package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func store(t *testing.T, c *MemoryRouteCache, path string, body []byte) {
	t.Helper()
	ctx := context.Background()
	v, err := c.Version(ctx, path)
	require.NoError(t, err)
	ok, err := c.SetIfUnchanged(ctx, path, body, v)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryRouteCache_SetGetInvalidate(t *testing.T) {
	c := NewMemoryRouteCache(0)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "/dashboard/invoices")
	require.NoError(t, err)
	assert.False(t, ok)

	store(t, c, "/dashboard/invoices", []byte(`[]`))
	body, ok, err := c.Get(ctx, "/dashboard/invoices")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), body)

	require.NoError(t, c.Invalidate(ctx, "/dashboard/invoices"))
	_, ok, _ = c.Get(ctx, "/dashboard/invoices")
	assert.False(t, ok)
}

func TestMemoryRouteCache_StaleRenderIsDropped(t *testing.T) {
	c := NewMemoryRouteCache(0)
	ctx := context.Background()

	before, err := c.Version(ctx, "/a")
	require.NoError(t, err)

	// a mutation lands while the renderer is still loading
	require.NoError(t, c.Invalidate(ctx, "/a"))

	ok, err := c.SetIfUnchanged(ctx, "/a", []byte("stale"), before)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "/a")
	assert.False(t, ok)

	after, err := c.Version(ctx, "/a")
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
	store(t, c, "/a", []byte("fresh"))
	body, ok, _ := c.Get(ctx, "/a")
	assert.True(t, ok)
	assert.Equal(t, []byte("fresh"), body)
}

func TestMemoryRouteCache_VersionsArePerPath(t *testing.T) {
	c := NewMemoryRouteCache(0)
	ctx := context.Background()

	v, _ := c.Version(ctx, "/a")
	require.NoError(t, c.Invalidate(ctx, "/b"))

	ok, err := c.SetIfUnchanged(ctx, "/a", []byte("x"), v)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryRouteCache_Expires(t *testing.T) {
	c := NewMemoryRouteCache(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	store(t, c, "/a", []byte("x"))

	now = now.Add(59 * time.Second)
	_, ok, _ := c.Get(ctx, "/a")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, "/a")
	assert.False(t, ok)
}

func TestMemoryRouteCache_ExpiryKeepsConcurrentRefresh(t *testing.T) {
	c := NewMemoryRouteCache(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	store(t, c, "/a", []byte("old"))
	now = now.Add(2 * time.Minute)

	refreshed := false
	c.now = func() time.Time {
		if !refreshed {
			refreshed = true
			// another request stores a fresh copy right after the read lock is released
			c.mu.Lock()
			c.entries["/a"] = entry{body: []byte("new"), expiresAt: now.Add(time.Minute)}
			c.mu.Unlock()
		}
		return now
	}

	_, ok, _ := c.Get(ctx, "/a")
	assert.False(t, ok)

	body, ok, _ := c.Get(ctx, "/a")
	assert.True(t, ok)
	assert.Equal(t, []byte("new"), body)
}

func TestMemoryRouteCache_CopiesBody(t *testing.T) {
	c := NewMemoryRouteCache(0)
	body := []byte("abc")
	store(t, c, "/a", body)
	body[0] = 'z'

	got, _, _ := c.Get(context.Background(), "/a")
	assert.Equal(t, []byte("abc"), got)
}

func TestMemoryRouteCache_Concurrent(t *testing.T) {
	c := NewMemoryRouteCache(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _ := c.Version(ctx, "/a")
			_, _ = c.SetIfUnchanged(ctx, "/a", []byte("x"), v)
			_, _, _ = c.Get(ctx, "/a")
			_ = c.Invalidate(ctx, "/a")
		}()
	}
	wg.Wait()
}

func TestRouteKey(t *testing.T) {
	assert.Equal(t, "route:/dashboard/invoices", routeKey("/dashboard/invoices"))
	assert.Equal(t, "route:version:/dashboard/invoices", versionKey("/dashboard/invoices"))
}
