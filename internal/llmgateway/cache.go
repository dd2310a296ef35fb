package llmgateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheTTL bounds how long a memoized embedding survives. Buyer prompts
// are rarely identical across sessions, so this mainly absorbs retries
// and repeated finalize calls within one dialog.
const cacheTTL = 10 * time.Minute

// redisEmbeddingCache implements EmbeddingCache over a shared Redis
// instance.
type redisEmbeddingCache struct {
	client *redis.Client
}

// NewRedisEmbeddingCache wraps client as an EmbeddingCache. A nil client
// is accepted and turns the cache into a permanent-miss no-op, so callers
// can wire it unconditionally behind a config flag.
func NewRedisEmbeddingCache(client *redis.Client) EmbeddingCache {
	return &redisEmbeddingCache{client: client}
}

func (c *redisEmbeddingCache) Get(ctx context.Context, key string) ([]float32, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.WarnContext(ctx, "embedding cache get failed", "error", err)
		}
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil {
		slog.WarnContext(ctx, "embedding cache value corrupt", "error", err)
		return nil, false
	}
	return vec, true
}

func (c *redisEmbeddingCache) Set(ctx context.Context, key string, vec []float32) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		slog.WarnContext(ctx, "embedding cache set failed", "error", err)
	}
}
