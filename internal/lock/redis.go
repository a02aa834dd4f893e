package lock

import (
	"context"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisLocker holds locks as expiring Redis keys so that several API
// instances serialise on the same project.
type RedisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

func NewRedisLocker(client redis.UniversalClient, expiry time.Duration) *RedisLocker {
	if expiry <= 0 {
		expiry = 8 * time.Second
	}
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex("lock:"+key,
		redsync.WithExpiry(l.expiry),
		redsync.WithRetryDelay(25*time.Millisecond),
		redsync.WithTries(int(l.expiry/(25*time.Millisecond))+1),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return func() {}, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// An unreleased key expires on its own.
			_, _ = mutex.Unlock()
		})
	}, nil
}
