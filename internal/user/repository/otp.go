package repository

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/tagro-storefront-service/pkg/cache"
	"github.com/redis/go-redis/v9"
)

func otpKey(purpose, phone string) string {
	return "otp:" + purpose + ":" + phone
}

// consumeScript deletes the code only when it matches, so a wrong guess
// leaves the issued code in place.
var consumeScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisOTPStore struct {
	client *cache.RedisClient
}

func NewRedisOTPStore(client *cache.RedisClient) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Save(ctx context.Context, purpose, phone, code string, ttl time.Duration) error {
	return s.client.Client.Set(ctx, otpKey(purpose, phone), code, ttl).Err()
}

func (s *RedisOTPStore) Verify(ctx context.Context, purpose, phone, code string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client.Client, []string{otpKey(purpose, phone)}, code).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

type otpEntry struct {
	code    string
	expires time.Time
}

type MemoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]otpEntry
	now   func() time.Time
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{codes: make(map[string]otpEntry), now: time.Now}
}

func (s *MemoryOTPStore) Save(_ context.Context, purpose, phone, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[otpKey(purpose, phone)] = otpEntry{code: code, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryOTPStore) Verify(_ context.Context, purpose, phone, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := otpKey(purpose, phone)
	e, ok := s.codes[key]
	if !ok {
		return false, nil
	}
	if s.now().After(e.expires) {
		delete(s.codes, key)
		return false, nil
	}
	if e.code != code {
		return false, nil
	}
	delete(s.codes, key)
	return true, nil
}
