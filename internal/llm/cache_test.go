package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachingProvider_ReusesIdenticalRequests(t *testing.T) {
	mock := NewMockProvider(MockText("### Courses"), MockText("### Other"))
	p := WithCache(mock, time.Minute)
	ctx := context.Background()
	req := Request{Messages: []Message{{Role: RoleUser, Content: "Find resources for Optics"}}, Search: true}

	first, err := p.Generate(ctx, req)
	require.NoError(t, err)
	second, err := p.Generate(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "### Courses", second.Text())
	assert.Same(t, first, second)
	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, 1, p.(*CachingProvider).Len())
}

func TestCachingProvider_KeyCoversParameters(t *testing.T) {
	base := Request{Messages: []Message{{Role: RoleUser, Content: "q"}}}

	variants := map[string]Request{
		"content":     {Messages: []Message{{Role: RoleUser, Content: "other"}}},
		"temperature": {Messages: base.Messages, Temperature: 0.1},
		"search":      {Messages: base.Messages, Search: true},
		"topK":        {Messages: base.Messages, TopK: 40},
		"image": {Messages: []Message{{
			Role: RoleUser, Content: "q",
			Images: []Image{{MIMEType: "image/png", Data: []byte{1}}},
		}}},
	}

	c := WithCache(NewMockProvider(), time.Minute).(*CachingProvider)
	baseKey := c.cacheKey(base)
	for name, req := range variants {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, baseKey, c.cacheKey(req))
		})
	}

	sameLen := Request{Messages: []Message{{
		Role: RoleUser, Content: "q",
		Images: []Image{{MIMEType: "image/png", Data: []byte{2}}},
	}}}
	assert.NotEqual(t, c.cacheKey(variants["image"]), c.cacheKey(sameLen),
		"images with equal size must not collide")
}

func TestCachingProvider_FailuresNotCached(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockText("ok"),
	)
	p := WithCache(mock, time.Minute)
	req := Request{Messages: []Message{{Role: RoleUser, Content: "q"}}}

	_, err := p.Generate(context.Background(), req)
	require.Error(t, err)

	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
	assert.Equal(t, 2, mock.CallCount())
}
