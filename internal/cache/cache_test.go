package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/rolodex/internal/config"
)

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "test", time.Minute), mr
}

func TestMemory_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	m.Set(ctx, "u1", ViewDeals, []byte("deals"))
	m.Set(ctx, "u2", ViewDeals, []byte("other"))

	data, ok := m.Get(ctx, "u1", ViewDeals)
	require.True(t, ok)
	assert.Equal(t, "deals", string(data))

	m.Invalidate(ctx, "u1", ViewDeals, ViewDashboard)
	_, ok = m.Get(ctx, "u1", ViewDeals)
	assert.False(t, ok)

	// Other owners keep their views
	data, ok = m.Get(ctx, "u2", ViewDeals)
	require.True(t, ok)
	assert.Equal(t, "other", string(data))
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return clock }

	m.Set(ctx, "u1", ViewDashboard, []byte("kpis"))
	_, ok := m.Get(ctx, "u1", ViewDashboard)
	assert.True(t, ok)

	clock = clock.Add(time.Minute)
	_, ok = m.Get(ctx, "u1", ViewDashboard)
	assert.False(t, ok, "Expected entry to expire after ttl")
}

func TestRedis_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedis(t)

	r.Set(ctx, "u1", ContactView("c1"), []byte("contact"))
	assert.True(t, mr.Exists("test:view:u1:/contacts/c1"))

	data, ok := r.Get(ctx, "u1", ContactView("c1"))
	require.True(t, ok)
	assert.Equal(t, "contact", string(data))

	r.Invalidate(ctx, "u1", ContactView("c1"), ViewContacts)
	_, ok = r.Get(ctx, "u1", ContactView("c1"))
	assert.False(t, ok)
}

func TestRedis_TTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedis(t)

	r.Set(ctx, "u1", ViewDeals, []byte("deals"))
	mr.FastForward(2 * time.Minute)

	_, ok := r.Get(ctx, "u1", ViewDeals)
	assert.False(t, ok)
}

func TestRedis_FailuresDoNotPanic(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedis(t)
	mr.Close()

	r.Set(ctx, "u1", ViewDeals, []byte("deals"))
	_, ok := r.Get(ctx, "u1", ViewDeals)
	assert.False(t, ok)
	r.Invalidate(ctx, "u1", ViewDeals)

	_, ok = r.Generation(ctx, "u1", ViewDeals)
	assert.False(t, ok, "Expected an unreadable generation to block caching")
	r.SetIfCurrent(ctx, "u1", ViewDeals, 0, []byte("deals"))
}

func TestLoad_MissThenHit(t *testing.T) {
	ctx := context.Background()
	r, _ := newRedis(t)

	type kpi struct {
		Total int `json:"total"`
	}
	calls := 0
	load := func(context.Context) (kpi, error) {
		calls++
		return kpi{Total: 7}, nil
	}

	got, err := Load(ctx, r, "u1", ViewDashboard, load)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Total)

	got, err = Load(ctx, r, "u1", ViewDashboard, load)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Total)
	assert.Equal(t, 1, calls, "Expected second load to be served from cache")

	r.Invalidate(ctx, "u1", ViewDashboard)
	_, err = Load(ctx, r, "u1", ViewDashboard, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestLoad_InvalidatedDuringLoad(t *testing.T) {
	r, _ := newRedis(t)
	caches := map[string]ViewCache{
		"memory": NewMemory(time.Minute),
		"redis":  r,
	}

	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rows := "before"
			load := func(context.Context) (string, error) {
				got := rows
				if rows == "before" {
					// A mutation commits and invalidates after the read
					rows = "after"
					c.Invalidate(ctx, "u1", ViewDeals)
				}
				return got, nil
			}

			got, err := Load(ctx, c, "u1", ViewDeals, load)
			require.NoError(t, err)
			assert.Equal(t, "before", got)
			_, ok := c.Get(ctx, "u1", ViewDeals)
			assert.False(t, ok, "Expected the stale read model to be discarded")

			got, err = Load(ctx, c, "u1", ViewDeals, load)
			require.NoError(t, err)
			assert.Equal(t, "after", got)
			_, ok = c.Get(ctx, "u1", ViewDeals)
			assert.True(t, ok, "Expected a clean load to be cached")
		})
	}
}

func TestSetIfCurrent_Generations(t *testing.T) {
	r, mr := newRedis(t)
	caches := map[string]ViewCache{
		"memory": NewMemory(0),
		"redis":  r,
	}

	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			gen, ok := c.Generation(ctx, "u2", ViewDashboard)
			require.True(t, ok)

			c.Invalidate(ctx, "u2", ViewDashboard)
			next, ok := c.Generation(ctx, "u2", ViewDashboard)
			require.True(t, ok)
			assert.Equal(t, gen+1, next)

			c.SetIfCurrent(ctx, "u2", ViewDashboard, gen, []byte("stale"))
			_, found := c.Get(ctx, "u2", ViewDashboard)
			assert.False(t, found)

			c.SetIfCurrent(ctx, "u2", ViewDashboard, next, []byte("fresh"))
			data, found := c.Get(ctx, "u2", ViewDashboard)
			require.True(t, found)
			assert.Equal(t, "fresh", string(data))
		})
	}
	assert.True(t, mr.Exists("test:gen:u2:/"))
}

func TestLoad_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	boom := errors.New("boom")

	_, err := Load(ctx, m, "u1", ViewDeals, func(context.Context) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok := m.Get(ctx, "u1", ViewDeals)
	assert.False(t, ok)
}

func TestLoad_NilCache(t *testing.T) {
	got, err := Load(context.Background(), nil, "u1", ViewDeals, func(context.Context) (int, error) {
		return 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, config.RedisConfig{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	mr := miniredis.RunT(t)
	c, err = New(ctx, config.RedisConfig{URL: "redis://" + mr.Addr(), KeySpace: "rolodex"})
	require.NoError(t, err)
	defer c.Close()
	assert.IsType(t, &Redis{}, c)

	_, err = New(ctx, config.RedisConfig{URL: "://bad"})
	assert.Error(t, err)
}
