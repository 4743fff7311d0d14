package catalogsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pspcatalog/pkg/platform/sentinel"
)

const (
	DefaultLockKey = "psp:sync:lock"
	DefaultLockTTL = 10 * time.Minute

	releaseTimeout  = 5 * time.Second
	minRenewalEvery = 10 * time.Millisecond
)

// releaseScript deletes the lock only while it still carries our token, so an
// expired lease never frees a newer owner's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the lease only while it still carries our token.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisGuard serializes runs across replicas with a SET NX lease. The owner
// renews the lease every TTL/3 until release, so the TTL only bounds how long
// a crashed owner can block later runs.
type RedisGuard struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

type RedisGuardOption func(*RedisGuard)

func WithLockKey(key string) RedisGuardOption {
	return func(g *RedisGuard) {
		if key != "" {
			g.key = key
		}
	}
}

func WithLockTTL(ttl time.Duration) RedisGuardOption {
	return func(g *RedisGuard) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

func WithGuardLogger(logger *slog.Logger) RedisGuardOption {
	return func(g *RedisGuard) {
		g.logger = logger
	}
}

func NewRedisGuard(client *redis.Client, opts ...RedisGuardOption) (*RedisGuard, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	g := &RedisGuard{
		client: client,
		key:    DefaultLockKey,
		ttl:    DefaultLockTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *RedisGuard) TryAcquire(ctx context.Context) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, g.key, token, g.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis SETNX %s: %w: %w", g.key, sentinel.ErrUnavailable, err)
	}
	if !ok {
		return nil, false, nil
	}

	bg := context.WithoutCancel(ctx)
	stop := make(chan struct{})
	stopped := make(chan struct{})
	go g.keepAlive(bg, token, stop, stopped)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-stopped
			g.release(bg, token)
		})
	}, true, nil
}

func (g *RedisGuard) keepAlive(ctx context.Context, token string, stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(max(g.ttl/3, minRenewalEvery))
	defer ticker.Stop()

	ttlMillis := max(g.ttl.Milliseconds(), 1)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rctx, cancel := context.WithTimeout(ctx, releaseTimeout)
			renewed, err := renewScript.Run(rctx, g.client, []string{g.key}, token, ttlMillis).Int()
			cancel()
			if err != nil {
				g.logger.WarnContext(ctx, "failed to renew sync lock", "key", g.key, "error", err)
				continue
			}
			if renewed == 0 {
				g.logger.WarnContext(ctx, "sync lock lost before release", "key", g.key)
				return
			}
		}
	}
}

func (g *RedisGuard) release(ctx context.Context, token string) {
	rctx, cancel := context.WithTimeout(ctx, releaseTimeout)
	defer cancel()
	deleted, err := releaseScript.Run(rctx, g.client, []string{g.key}, token).Int()
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to release sync lock", "key", g.key, "error", err)
		return
	}
	if deleted == 0 {
		g.logger.WarnContext(ctx, "sync lock expired before release", "key", g.key, "ttl", g.ttl.String())
	}
}
