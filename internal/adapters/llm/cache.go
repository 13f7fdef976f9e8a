package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"nickguard/internal/ports"
)

// cacheSize bounds the number of remembered replies.
const cacheSize = 1024

// Cache remembers successful completions for a short TTL so a member retrying
// the same nickname does not cost another request. Failures are never cached.
type Cache struct {
	next    ports.LanguageModelClient
	entries *expirable.LRU[string, string]
}

// NewCache wraps next. A non-positive ttl disables caching.
func NewCache(next ports.LanguageModelClient, ttl time.Duration) *Cache {
	c := &Cache{next: next}
	if ttl > 0 {
		c.entries = expirable.NewLRU[string, string](cacheSize, nil, ttl)
	}
	return c
}

func (c *Cache) Complete(ctx context.Context, system, user string) (string, error) {
	if c.entries == nil {
		return c.next.Complete(ctx, system, user)
	}
	key := cacheKey(system, user)
	if v, ok := c.entries.Get(key); ok {
		return v, nil
	}
	out, err := c.next.Complete(ctx, system, user)
	if err != nil {
		return "", err
	}
	c.entries.Add(key, out)
	return out, nil
}

func (c *Cache) Len() int {
	if c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

func cacheKey(system, user string) string {
	h := sha256.New()
	h.Write([]byte(system))
	h.Write([]byte{0})
	h.Write([]byte(user))
	return hex.EncodeToString(h.Sum(nil))
}
