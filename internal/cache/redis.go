package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var errStaleView = errors.New("view invalidated during load")

// Redis is a ViewCache shared by every server process
type Redis struct {
	client   *redis.Client
	keySpace string
	ttl      time.Duration
}

// NewRedis wraps client. Keys are "<keySpace>:view:<owner>:<view>" and the
// generation counters "<keySpace>:gen:<owner>:<view>".
func NewRedis(client *redis.Client, keySpace string, ttl time.Duration) *Redis {
	if ttl < 0 {
		ttl = 0
	}
	return &Redis{client: client, keySpace: keySpace, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, ownerID, view string) ([]byte, bool) {
	key := r.key(ownerID, view)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// On redis errors fall back to the datastore without failing
			slog.Warn("view cache read failed", "key", key, "error", err)
			_ = r.client.Del(ctx, key).Err()
		}
		return nil, false
	}
	return data, true
}

func (r *Redis) Set(ctx context.Context, ownerID, view string, data []byte) {
	if err := r.client.Set(ctx, r.key(ownerID, view), data, r.ttl).Err(); err != nil {
		slog.Warn("view cache write failed", "owner", ownerID, "view", view, "error", err)
	}
}

func (r *Redis) Generation(ctx context.Context, ownerID, view string) (uint64, bool) {
	gen, err := r.client.Get(ctx, r.genKey(ownerID, view)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		slog.Warn("view generation read failed", "owner", ownerID, "view", view, "error", err)
		return 0, false
	}
	return gen, true
}

// SetIfCurrent watches the generation key so an Invalidate racing the write
// aborts it
func (r *Redis) SetIfCurrent(ctx context.Context, ownerID, view string, gen uint64, data []byte) {
	genKey := r.genKey(ownerID, view)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleView
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key(ownerID, view), data, r.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil, errors.Is(err, errStaleView), errors.Is(err, redis.TxFailedErr):
	default:
		slog.Warn("view cache write failed", "owner", ownerID, "view", view, "error", err)
	}
}

func (r *Redis) Invalidate(ctx context.Context, ownerID string, views ...string) {
	if len(views) == 0 {
		return
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, view := range views {
			pipe.Del(ctx, r.key(ownerID, view))
			pipe.Incr(ctx, r.genKey(ownerID, view))
		}
		return nil
	})
	if err != nil {
		slog.Error("view invalidation failed", "owner", ownerID, "views", views, "error", err)
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(ownerID, view string) string {
	return r.prefixed("view:" + viewKey(ownerID, view))
}

func (r *Redis) genKey(ownerID, view string) string {
	return r.prefixed("gen:" + viewKey(ownerID, view))
}

func (r *Redis) prefixed(key string) string {
	if r.keySpace == "" {
		return key
	}
	return r.keySpace + ":" + key
}
