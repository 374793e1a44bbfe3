package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "hotelcore/errors"
)

// Locker serializes writers per key. unlock is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func RoomLockKey(roomID string) string       { return "room:" + roomID }
func RatingLockKey(resourceID string) string { return "rating:" + resourceID }

func lockTimeout(key string, err error) error {
	return apperrors.NewAppError(apperrors.ErrCodeLockTimeout, "could not acquire lock "+key, err)
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

// KeyedMutex là khóa theo key trong một process. Slot bị xóa khi không còn ai chờ.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: map[string]*lockSlot{}}
}

func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	slot, ok := k.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		k.slots[key] = slot
	}
	slot.refs++
	k.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.ch
				k.release(key, slot)
			})
		}, nil
	case <-ctx.Done():
		k.release(key, slot)
		return nil, lockTimeout(key, ctx.Err())
	}
}

func (k *KeyedMutex) release(key string, slot *lockSlot) {
	k.mu.Lock()
	defer k.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(k.slots, key)
	}
}

// size is used by tests to check slots are reclaimed.
func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.slots)
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker gives mutual exclusion across instances sharing one Redis.
// The TTL bounds how long a crashed holder can block others.
type RedisLocker struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLocker{rdb: rdb, prefix: "lock:", ttl: ttl, retry: 25 * time.Millisecond}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
				return nil, lockTimeout(key, err)
			}
			return nil, err
		}
		if ok {
			var once sync.Once
			return func() {
				once.Do(func() {
					releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					releaseScript.Run(releaseCtx, l.rdb, []string{redisKey}, token)
				})
			}, nil
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, lockTimeout(key, ctx.Err())
		case <-timer.C:
		}
	}
}
