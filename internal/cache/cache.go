// Package cache keeps rendered read models per user and drops them when a
// mutation marks the view stale
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/thenoetrevino/rolodex/internal/config"
)

// Names of the views mutations revalidate
const (
	ViewDashboard  = "/"
	ViewDeals      = "/deals"
	ViewContacts   = "/contacts"
	ViewCandidates = "/candidates"
	ViewClients    = "/clients"
)

// ContactView names the detail view of one contact
func ContactView(id string) string {
	return ViewContacts + "/" + id
}

// Invalidator marks named views of one user stale
type Invalidator interface {
	Invalidate(ctx context.Context, ownerID string, views ...string)
}

// ViewCache stores a rendered read model per user and view. Every
// Invalidate bumps the view's generation, so a read model built before an
// invalidation can be refused with SetIfCurrent.
type ViewCache interface {
	Invalidator
	Get(ctx context.Context, ownerID, view string) ([]byte, bool)
	Set(ctx context.Context, ownerID, view string, data []byte)

	// Generation reports the current generation of a view. ok is false when
	// it could not be read, in which case nothing should be stored.
	Generation(ctx context.Context, ownerID, view string) (gen uint64, ok bool)
	// SetIfCurrent stores data only while the view is still at gen
	SetIfCurrent(ctx context.Context, ownerID, view string, gen uint64, data []byte)

	Close() error
}

// New returns a Redis backed cache when a url is configured and an
// in-memory cache otherwise
func New(ctx context.Context, cfg config.RedisConfig) (ViewCache, error) {
	if cfg.URL == "" {
		return NewMemory(cfg.ViewTTL), nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	return NewRedis(client, cfg.KeySpace, cfg.ViewTTL), nil
}

// Load returns the cached view decoded into T, or calls load and caches its
// result. Cache failures fall through to load. A result is not cached when
// the view was invalidated while load ran.
func Load[T any](ctx context.Context, c ViewCache, ownerID, view string, load func(context.Context) (T, error)) (T, error) {
	var gen uint64
	var genOK bool
	if c != nil {
		gen, genOK = c.Generation(ctx, ownerID, view)
		if data, ok := c.Get(ctx, ownerID, view); ok {
			var v T
			if err := sonic.Unmarshal(data, &v); err == nil {
				return v, nil
			}
			slog.Warn("dropping undecodable view", "owner", ownerID, "view", view)
			c.Invalidate(ctx, ownerID, view)
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if c != nil && genOK {
		if data, err := sonic.Marshal(v); err == nil {
			c.SetIfCurrent(ctx, ownerID, view, gen, data)
		}
	}
	return v, nil
}
