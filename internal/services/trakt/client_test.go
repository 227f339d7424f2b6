package trakt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amaumene/traktmanager/internal/config"
	"github.com/amaumene/traktmanager/internal/metrics"
	"github.com/amaumene/traktmanager/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type testEnv struct {
	client *Client
	store  *MemoryTokenStore
	server *httptest.Server
	hook   *test.Hook
}

func newTestEnv(t *testing.T, handler http.HandlerFunc, token *models.DeviceToken, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		TraktBaseURL:      server.URL,
		TraktClientID:     "client-id",
		TraktClientSecret: "client-secret",
		HTTPTimeout:       5 * time.Second,
	}
	for _, m := range mutate {
		m(cfg)
	}

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	store := NewMemoryTokenStore(token)
	client, err := NewClient(cfg, store, logger, metrics.New(), noop.NewTracerProvider().Tracer("test"))
	require.NoError(t, err)
	return &testEnv{client: client, store: store, server: server, hook: hook}
}

func bearer(value string) *models.DeviceToken {
	return &models.DeviceToken{AccessToken: value, TokenType: "Bearer"}
}

func TestDoRequestFailsFastWithoutToken(t *testing.T) {
	var hits int32
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}, nil)

	_, err := env.client.doRequest(context.Background(), request{method: http.MethodGet, path: "sync/watchlist", requiresAuth: true, name: "x"})
	assert.ErrorIs(t, err, ErrTokenRequired)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestDoRequestSetsHeaders(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.Header.Get("trakt-api-version"))
		assert.Equal(t, "client-id", r.Header.Get("trakt-api-key"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/users/me/lists", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.WriteHeader(http.StatusOK)
	}, bearer("secret-token"))

	_, err := env.client.doRequest(context.Background(), request{
		method:       http.MethodGet,
		path:         "users/me/lists",
		query:        map[string][]string{"page": {"2"}},
		requiresAuth: true,
		name:         "lists",
	})
	require.NoError(t, err)
}

func TestDoRequestStatusMapping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		requiresAuth bool
		check        func(t *testing.T, err error)
	}{
		{name: "401", status: http.StatusUnauthorized, requiresAuth: false, check: func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnauthenticated)
		}},
		{name: "403 on authenticated endpoint", status: http.StatusForbidden, requiresAuth: true, check: func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrForbidden)
		}},
		{name: "403 on public endpoint", status: http.StatusForbidden, requiresAuth: false, check: func(t *testing.T, err error) {
			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
		}},
		{name: "500", status: http.StatusInternalServerError, requiresAuth: true, check: func(t *testing.T, err error) {
			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, "boom", httpErr.Body)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("boom"))
			}, bearer("token"))

			_, err := env.client.doRequest(context.Background(), request{method: http.MethodGet, path: "p", requiresAuth: tt.requiresAuth, name: "p"})
			tt.check(t, err)
		})
	}
}

func TestParsePagination(t *testing.T) {
	full := http.Header{}
	full.Set("X-Pagination-Page", "2")
	full.Set("X-Pagination-Limit", "10")
	full.Set("X-Pagination-Page-Count", "5")
	full.Set("X-Pagination-Item-Count", "47")

	p := parsePagination(full)
	require.NotNil(t, p)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 10, PageCount: 5, ItemCount: 47}, *p)

	partial := full.Clone()
	partial.Del("X-Pagination-Item-Count")
	assert.Nil(t, parsePagination(partial))

	garbage := full.Clone()
	garbage.Set("X-Pagination-Limit", "ten")
	assert.Nil(t, parsePagination(garbage))

	invalid := full.Clone()
	invalid.Set("X-Pagination-Page", "0")
	assert.Nil(t, parsePagination(invalid))
}

func TestCacheServesAnonymousGets(t *testing.T) {
	var hits int32
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`[]`))
	}, nil, func(cfg *config.Config) { cfg.CacheTTL = time.Minute })

	for i := 0; i < 3; i++ {
		_, err := env.client.GetLists(context.Background(), models.ListsRequest{Kind: models.ListKindOfficial})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestRateLimiterHonoursCancellation(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, nil, func(cfg *config.Config) { cfg.RequestsPerSecond = 0.001 })

	_, err := env.client.GetLists(context.Background(), models.ListsRequest{Kind: models.ListKindOfficial})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = env.client.GetLists(ctx, models.ListsRequest{Kind: models.ListKindOfficial})
	assert.Error(t, err)
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore(nil)
	_, ok := store.GetToken()
	assert.False(t, ok)

	store.SaveToken(models.DeviceToken{AccessToken: "a", TokenType: "Bearer"})
	tok, ok := store.GetToken()
	require.True(t, ok)
	tok.AccessToken = "mutated"

	again, _ := store.GetToken()
	assert.Equal(t, "a", again.AccessToken)
}

func TestMemoryTokenStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryTokenStore(bearer("seed"))
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				if j%2 == 0 {
					store.SaveToken(models.DeviceToken{AccessToken: "t", TokenType: "Bearer"})
				} else {
					tok, ok := store.GetToken()
					assert.True(t, ok)
					assert.NotEmpty(t, tok.AccessToken)
				}
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
