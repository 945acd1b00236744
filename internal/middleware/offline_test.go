package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/raffle-ticket-sales/internal/offline"
)

func TestSameOrigin(t *testing.T) {
	tests := []struct {
		name   string
		site   string
		origin string
		want   bool
	}{
		{"fetch metadata same origin", "same-origin", "", true},
		{"typed url", "none", "", true},
		{"cross site", "cross-site", "", false},
		{"same site subdomain", "same-site", "", false},
		{"no headers", "", "", true},
		{"origin matches host", "", "http://example.com", true},
		{"origin differs", "", "http://evil.test", false},
		{"bad origin", "", "://", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example.com/rifas", nil)
			if tt.site != "" {
				r.Header.Set("Sec-Fetch-Site", tt.site)
			}
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, sameOrigin(r))
		})
	}
}

type cacheServer struct {
	e     *echo.Echo
	store *offline.MemoryStore
	calls int
}

func newCacheServer(maxBody int) *cacheServer {
	s := &cacheServer{e: echo.New(), store: offline.NewMemoryStore(0, 0)}
	policy := offline.Policy{Version: "v1", Precache: []string{"/rifas"}}
	s.e.Use(OfflineCache(policy, s.store, maxBody))
	page := func(c echo.Context) error {
		s.calls++
		return c.HTML(http.StatusOK, "<p>rifas</p>")
	}
	s.e.GET("/rifas", page)
	s.e.GET("/rifas/1", page)
	s.e.POST("/rifas", page)
	s.e.GET("/static/css/main.css", func(c echo.Context) error {
		s.calls++
		return c.String(http.StatusNotFound, "gone")
	})
	return s
}

func (s *cacheServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *cacheServer) cached(key string) bool {
	_, ok, _ := s.store.Get(context.Background(), "rifas-cache-v1", key)
	return ok
}

func TestOfflineCacheMissThenHit(t *testing.T) {
	s := newCacheServer(1 << 20)

	first := s.do(httptest.NewRequest(http.MethodGet, "/rifas", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	require.Eventually(t, func() bool { return s.cached("/rifas") }, time.Second, 10*time.Millisecond)

	second := s.do(httptest.NewRequest(http.MethodGet, "/rifas", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "<p>rifas</p>", second.Body.String())
	assert.Contains(t, second.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, 1, s.calls)
}

func TestOfflineCacheSkips(t *testing.T) {
	tests := []struct {
		name  string
		req   func() *http.Request
		key   string
		cache string
	}{
		{"uncovered path", func() *http.Request { return httptest.NewRequest(http.MethodGet, "/rifas/1", nil) }, "/rifas/1", ""},
		{"post", func() *http.Request { return httptest.NewRequest(http.MethodPost, "/rifas", nil) }, "/rifas", ""},
		{"cross site", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/rifas", nil)
			r.Header.Set("Sec-Fetch-Site", "cross-site")
			return r
		}, "/rifas", ""},
		{"authorization", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/rifas", nil)
			r.Header.Set("Authorization", "Bearer x")
			return r
		}, "/rifas", ""},
		{"token cookie", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/rifas", nil)
			r.AddCookie(&http.Cookie{Name: "token", Value: "x"})
			return r
		}, "/rifas", ""},
		{"non 200", func() *http.Request { return httptest.NewRequest(http.MethodGet, "/static/css/main.css", nil) }, "/static/css/main.css", "MISS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newCacheServer(1 << 20)
			rec := s.do(tt.req())
			assert.Equal(t, tt.cache, rec.Header().Get("X-Cache"))
			time.Sleep(20 * time.Millisecond)
			assert.False(t, s.cached(tt.key))
		})
	}
}

func TestOfflineCacheBodyLimit(t *testing.T) {
	s := newCacheServer(4)
	rec := s.do(httptest.NewRequest(http.MethodGet, "/rifas", nil))
	assert.Equal(t, "<p>rifas</p>", rec.Body.String(), "oversized bodies are still served")
	time.Sleep(20 * time.Millisecond)
	assert.False(t, s.cached("/rifas"))
}

func TestOfflineCacheNilStore(t *testing.T) {
	e := echo.New()
	e.Use(OfflineCache(offline.Policy{Precache: []string{"/"}}, nil, 0))
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "home") })
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "home", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
