package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/galeragate-ledger/internal/config"
)

// Token bucket kept in a Redis hash so login attempts are shared by every
// console process pointed at the same server.  Returns
// { allowed, tokens, retry_after_ms }.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + intervals)
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = interval_ms - (now_ms - last_refill)
		if retry_after_ms < 0 then retry_after_ms = 0 end
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RedisLimiter runs the token bucket inside Redis.
type RedisLimiter struct {
	rdb *redis.Client
	cfg config.LoginLimitConfig
	now func() time.Time
}

func NewRedisLimiter(rdb *redis.Client, cfg config.LoginLimitConfig) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, cfg: cfg, now: time.Now}
}

func (l *RedisLimiter) key(k string) string { return l.cfg.Prefix + ":" + k }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	ttl := int64(l.cfg.TTL / time.Second)
	if ttl < 1 {
		ttl = 1
	}
	vals, err := tokenBucketScript.Run(ctx, l.rdb, []string{l.key(key)},
		l.now().UnixMilli(), l.cfg.Capacity, l.cfg.RefillInterval.Milliseconds(), ttl,
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("tokenBucketScript.Run -> %w", err)
	}
	if len(vals) != 3 {
		return Decision{}, fmt.Errorf("tokenBucketScript.Run -> unexpected result %v", vals)
	}
	return Decision{
		Allowed:    vals[0] == 1,
		Remaining:  int(vals[1]),
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.rdb.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("rdb.Del -> %w", err)
	}
	return nil
}

// String identifies the backend in logs.
func (l *RedisLimiter) String() string {
	return "redis(" + l.rdb.Options().Addr + ", capacity=" + strconv.Itoa(l.cfg.Capacity) + ")"
}
