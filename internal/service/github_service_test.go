package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/api/internal/config"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func TestGitHubService_Repos(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		assert.Equal(t, "created:asc", r.URL.Query().Get("sort"))
		assert.Equal(t, "id", r.URL.Query().Get("client_id"))
		assert.Equal(t, "secret", r.URL.Query().Get("client_secret"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		switch r.URL.Path {
		case "/users/ada/repos":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name":"analytical-engine"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	cache := newMapCache()
	svc := NewGitHubService(config.GitHubConfig{
		BaseURL:         srv.URL,
		ClientID:        "id",
		ClientSecret:    "secret",
		CacheTTLSeconds: 60,
	}, cache, nil)

	ctx := context.Background()
	body, err := svc.Repos(ctx, "ada")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"analytical-engine"}]`, string(body))
	assert.Equal(t, time.Minute, cache.ttls["github:repos:ada"])

	body, err = svc.Repos(ctx, "Ada")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"analytical-engine"}]`, string(body))
	assert.EqualValues(t, 1, hits.Load(), "second lookup is served from cache")

	_, err = svc.Repos(ctx, "nobody")
	assertDomainError(t, err, http.StatusNotFound, MessageNoGitHubProfile)

	_, err = svc.Repos(ctx, "  ")
	assertDomainError(t, err, http.StatusNotFound, MessageNoGitHubProfile)
}

func TestGitHubService_WithoutCache(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Empty(t, r.URL.Query().Get("client_id"))
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	svc := NewGitHubService(config.GitHubConfig{BaseURL: srv.URL}, nil, nil)
	for i := 0; i < 2; i++ {
		body, err := svc.Repos(context.Background(), "ada")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(body))
	}
	assert.EqualValues(t, 2, hits.Load())
}

func TestGitHubService_UpstreamDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	svc := NewGitHubService(config.GitHubConfig{BaseURL: url, TimeoutSeconds: 1}, nil, nil)
	_, err := svc.Repos(context.Background(), "ada")
	assertDomainError(t, err, http.StatusBadGateway, "GitHub is unavailable")
}
