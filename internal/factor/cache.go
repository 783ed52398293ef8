package factor

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/sales-commission/internal/commission"
)

const (
	activeTableKey     = "commission:factor-table:active"
	tableGenerationKey = "commission:factor-table:generation"
)

// setIfGeneration stores the table only while the generation still matches
// the one observed before the rows were read. KEYS: table, generation.
// ARGV: expected generation, payload, ttl in ms (0 = no expiry).
var setIfGeneration = redis.NewScript(`
local current = redis.call("GET", KEYS[2]) or "0"
if current ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call("SET", KEYS[1], ARGV[2], "PX", ttl)
else
	redis.call("SET", KEYS[1], ARGV[2])
end
return 1
`)

// TableCache keeps the active factor entries in Redis as JSON. Every write
// bumps a generation counter; a reader that loaded rows under an older
// generation never repopulates the cache.
type TableCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTableCache constructs a cache helper. A nil client disables caching.
func NewTableCache(client *redis.Client, ttl time.Duration) *TableCache {
	return &TableCache{client: client, ttl: ttl}
}

func (c *TableCache) enabled() bool { return c != nil && c.client != nil }

// Get loads the cached entries. It reports whether the key existed.
func (c *TableCache) Get(ctx context.Context) ([]commission.Entry, bool, error) {
	if !c.enabled() {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, activeTableKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var entries []commission.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// Generation returns the current write generation, "0" before any write.
// Read it before loading rows and hand it to Set.
func (c *TableCache) Generation(ctx context.Context) (string, error) {
	if !c.enabled() {
		return "0", nil
	}
	gen, err := c.client.Get(ctx, tableGenerationKey).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

// Set stores entries loaded under generation gen. It reports false, without
// error, when a write happened in between and the entries are stale.
func (c *TableCache) Set(ctx context.Context, gen string, entries []commission.Entry) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	if entries == nil {
		entries = []commission.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return false, err
	}
	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{activeTableKey, tableGenerationKey},
		gen, data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate bumps the generation and drops the cached table. Call it after
// the write has committed.
func (c *TableCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, tableGenerationKey)
		pipe.Del(ctx, activeTableKey)
		return nil
	})
	return err
}
