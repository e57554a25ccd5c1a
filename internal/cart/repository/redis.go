package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/cart/dto"
	"github.com/fekuna/tagro-storefront-service/pkg/cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const cartTTL = 7 * 24 * time.Hour

// RedisRepository keeps each cart as a hash cart:{userID} of product id →
// quantity, plus a sorted set cart:{userID}:order scored by first-add time.
type RedisRepository struct {
	cache *cache.RedisClient
	now   func() time.Time
}

func NewRedisRepository(c *cache.RedisClient) *RedisRepository {
	return &RedisRepository{cache: c, now: time.Now}
}

func itemsKey(userID string) string { return "cart:" + userID }
func orderKey(userID string) string { return "cart:" + userID + ":order" }

// setIfExistsScript updates a field only if the line is already in the cart.
var setIfExistsScript = redis.NewScript(`
if redis.call("hexists", KEYS[1], ARGV[1]) == 1 then
	redis.call("hset", KEYS[1], ARGV[1], ARGV[2])
	return 1
end
return 0
`)

func (r *RedisRepository) Lines(ctx context.Context, userID string) ([]dto.Line, error) {
	client := r.cache.Client
	quantities, err := client.HGetAll(ctx, itemsKey(userID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "read cart")
	}
	if len(quantities) == 0 {
		return nil, nil
	}
	order, err := client.ZRange(ctx, orderKey(userID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "read cart order")
	}

	lines := make([]dto.Line, 0, len(quantities))
	seen := make(map[string]bool, len(quantities))
	appendLine := func(productID string) {
		raw, ok := quantities[productID]
		if !ok || seen[productID] {
			return
		}
		seen[productID] = true
		if qty, err := strconv.Atoi(raw); err == nil && qty > 0 {
			lines = append(lines, dto.Line{ProductID: productID, Quantity: qty})
		}
	}
	for _, productID := range order {
		appendLine(productID)
	}
	// lines missing from the order set (e.g. after a partial expiry) go last
	for productID := range quantities {
		appendLine(productID)
	}
	return lines, nil
}

func (r *RedisRepository) Add(ctx context.Context, userID, productID string, qty int) error {
	_, err := r.cache.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, itemsKey(userID), productID, int64(qty))
		pipe.ZAddNX(ctx, orderKey(userID), redis.Z{Score: float64(r.now().UnixNano()), Member: productID})
		pipe.Expire(ctx, itemsKey(userID), cartTTL)
		pipe.Expire(ctx, orderKey(userID), cartTTL)
		return nil
	})
	return errors.Wrap(err, "add to cart")
}

func (r *RedisRepository) SetQuantity(ctx context.Context, userID, productID string, qty int) error {
	err := setIfExistsScript.Run(ctx, r.cache.Client, []string{itemsKey(userID)}, productID, qty).Err()
	return errors.Wrap(err, "set cart quantity")
}

func (r *RedisRepository) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.cache.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, itemsKey(userID), productID)
		pipe.ZRem(ctx, orderKey(userID), productID)
		return nil
	})
	return errors.Wrap(err, "remove from cart")
}

func (r *RedisRepository) Clear(ctx context.Context, userID string) error {
	err := r.cache.Client.Del(ctx, itemsKey(userID), orderKey(userID)).Err()
	return errors.Wrap(err, "clear cart")
}
