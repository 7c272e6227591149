// Package usage counts requests made against the gateway's shared community
// identifiers so operators can see how close they are to its rate limits.
package usage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Recorder records one served request for identifier and returns the count in
// the current window. Failed calls are not recorded.
type Recorder interface {
	Record(ctx context.Context, identifier string) (int64, error)
}

const (
	DefaultKeyPrefix = "pocket:community"
	DefaultWindow    = time.Hour
)

// RedisRecorder keeps one counter per identifier that expires a window after
// its first request. Later requests don't extend the window.
type RedisRecorder struct {
	rdb    redis.Cmdable
	prefix string
	window time.Duration
}

var _ Recorder = (*RedisRecorder)(nil)

// NewRedisRecorder uses DefaultKeyPrefix and DefaultWindow when prefix or window are zero.
func NewRedisRecorder(rdb redis.Cmdable, prefix string, window time.Duration) *RedisRecorder {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisRecorder{rdb: rdb, prefix: prefix, window: window}
}

func (r *RedisRecorder) key(identifier string) string {
	return r.prefix + ":" + identifier
}

func (r *RedisRecorder) Record(ctx context.Context, identifier string) (int64, error) {
	key := r.key(identifier)
	pipe := r.rdb.TxPipeline()
	// SET NX EX opens the window; INCR keeps the TTL it set.
	pipe.SetNX(ctx, key, 0, r.window)
	incr := pipe.Incr(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errors.Wrapf(err, "Failed to record usage for %s", identifier)
	}
	return incr.Val(), nil
}

// Count returns the requests recorded for identifier in the current window.
func (r *RedisRecorder) Count(ctx context.Context, identifier string) (int64, error) {
	n, err := r.rdb.Get(ctx, r.key(identifier)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to read usage for %s", identifier)
	}
	return n, nil
}
