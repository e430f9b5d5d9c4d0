package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachingProvider is a decorator that reuses successful responses for
// identical requests until they expire. Failures are never cached.
type CachingProvider struct {
	inner Provider
	cache *cache.Cache
}

// WithCache wraps a Provider with an in-memory response cache.
func WithCache(p Provider, ttl time.Duration) Provider {
	return &CachingProvider{
		inner: p,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	key := c.cacheKey(req)
	if hit, ok := c.cache.Get(key); ok {
		return hit.(*Response), nil
	}

	resp, err := c.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, resp, cache.DefaultExpiration)
	return resp, nil
}

func (c *CachingProvider) ModelID() string {
	return c.inner.ModelID()
}

// Len reports the number of live cache entries.
func (c *CachingProvider) Len() int {
	return c.cache.ItemCount()
}

// cacheKey hashes every field that can change the response.
func (c *CachingProvider) cacheKey(req Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%g|%g|%d|%t\n",
		c.inner.ModelID(), req.Model, req.MaxTokens, req.Temperature, req.TopP, req.TopK, req.Search)
	h.Write([]byte(serializeRequest(req)))
	for _, m := range req.Messages {
		for _, img := range m.Images {
			h.Write(img.Data)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
