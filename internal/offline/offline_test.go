package offline

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = Policy{Version: "v2", Precache: []string{"/", "/rifas", "/static/css/main.css", "/static/js/base.js"}}

func TestPolicy(t *testing.T) {
	assert.Equal(t, "rifas-cache-v2", testPolicy.CacheName())

	tests := []struct {
		name       string
		method     string
		sameOrigin bool
		status     int
		bypass     bool
		storable   bool
	}{
		{"same-origin get ok", http.MethodGet, true, 200, false, true},
		{"same-origin get not found", http.MethodGet, true, 404, false, false},
		{"post", http.MethodPost, true, 200, true, false},
		{"cross-origin get", http.MethodGet, false, 200, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bypass, testPolicy.Bypass(tt.method, tt.sameOrigin))
			assert.Equal(t, tt.storable, testPolicy.Storable(tt.method, tt.sameOrigin, tt.status))
		})
	}

	assert.True(t, testPolicy.Covers("/rifas"))
	assert.True(t, testPolicy.Covers("/static/img/logo.png"))
	assert.False(t, testPolicy.Covers("/rifas/3"))
}

func TestActivatePurgesOtherGenerations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 0)
	for _, name := range []string{"rifas-cache-v1", "rifas-cache-v2", "rifas-cache-old"} {
		require.NoError(t, store.Put(ctx, name, "/", Entry{Status: 200}))
	}

	purged, err := Activate(ctx, store, testPolicy)
	require.NoError(t, err)
	sort.Strings(purged)
	assert.Equal(t, []string{"rifas-cache-old", "rifas-cache-v1"}, purged)

	names, _ := store.Caches(ctx)
	assert.Equal(t, []string{"rifas-cache-v2"}, names)
	_, ok, _ := store.Get(ctx, "rifas-cache-v2", "/")
	assert.True(t, ok)
}

func TestMemoryStoreLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(1, 0)
	require.NoError(t, store.Put(ctx, "c", "/a", Entry{Status: 200}))
	require.NoError(t, store.Put(ctx, "c", "/b", Entry{Status: 200}))
	require.NoError(t, store.Put(ctx, "c", "/a", Entry{Status: 200, Body: []byte("new")}))

	_, ok, _ := store.Get(ctx, "c", "/b")
	assert.False(t, ok)
	e, ok, _ := store.Get(ctx, "c", "/a")
	assert.True(t, ok)
	assert.Equal(t, "new", string(e.Body))

	require.NoError(t, store.DeleteCache(ctx, "c"))
	require.NoError(t, store.Put(ctx, "c", "/b", Entry{Status: 200}))
	_, ok, _ = store.Get(ctx, "c", "/b")
	assert.True(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(1, time.Minute)
	store.Now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "rifas-cache-v1", "/rifas", Entry{Status: 200, Body: []byte("old")}))
	now = now.Add(59 * time.Second)
	e, ok, _ := store.Get(ctx, "rifas-cache-v1", "/rifas")
	require.True(t, ok)
	assert.Equal(t, "old", string(e.Body))

	now = now.Add(time.Second)
	_, ok, _ = store.Get(ctx, "rifas-cache-v1", "/rifas")
	assert.False(t, ok, "entry expires after the ttl")

	require.NoError(t, store.Put(ctx, "rifas-cache-v1", "/", Entry{Status: 200}))
	_, ok, _ = store.Get(ctx, "rifas-cache-v1", "/")
	assert.True(t, ok, "expired entries free their slot")

	require.NoError(t, store.Put(ctx, "rifas-cache-v1", "/", Entry{Status: 200, Body: []byte("new")}))
	now = now.Add(30 * time.Second)
	e, ok, _ = store.Get(ctx, "rifas-cache-v1", "/")
	require.True(t, ok)
	assert.Equal(t, "new", string(e.Body), "a refresh restarts the ttl")
}

func TestEntryCodec(t *testing.T) {
	in := Entry{Status: 200, Header: http.Header{"Content-Type": {"text/css"}}, Body: []byte("body{}")}
	bs, err := encodeEntry(in)
	require.NoError(t, err)
	out, ok := decodeEntry(bs)
	require.True(t, ok)
	assert.Equal(t, in, out)

	_, ok = decodeEntry([]byte{0, 0})
	assert.False(t, ok)
	_, ok = decodeEntry([]byte{0, 0, 0, 200, 0, 0, 1, 0})
	assert.False(t, ok)
}

func TestScript(t *testing.T) {
	js, err := Script(testPolicy)
	require.NoError(t, err)
	s := string(js)
	assert.Contains(t, s, `const CACHE_NAME = "rifas-cache-v2";`)
	assert.Contains(t, s, `const PRECACHE = ["/","/rifas","/static/css/main.css","/static/js/base.js"];`)
	assert.Contains(t, s, "req.method !== 'GET'")
	assert.Contains(t, s, "self.location.origin")

	empty, err := Script(Policy{Version: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(empty), "const PRECACHE = [];")
}
