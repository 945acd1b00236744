// Package offline holds the cache-first policy shared by the browser
// service worker and the server-side response store.
package offline

import (
	"net/http"
	"strings"
)

// CachePrefix prefixes every cache generation name.
const CachePrefix = "rifas-cache-"

// Policy is one generation of the offline cache.
type Policy struct {
	Version  string
	Precache []string
}

// CacheName is rifas-cache-<Version>.
func (p Policy) CacheName() string { return CachePrefix + p.Version }

// Bypass reports whether a request skips the cache entirely.  Only
// same-origin GETs are cached.
func (p Policy) Bypass(method string, sameOrigin bool) bool {
	return method != http.MethodGet || !sameOrigin
}

// Storable reports whether a network response may be stored.
func (p Policy) Storable(method string, sameOrigin bool, status int) bool {
	return !p.Bypass(method, sameOrigin) && status == http.StatusOK
}

// Precached reports whether path is on the install list.
func (p Policy) Precached(path string) bool {
	for _, pc := range p.Precache {
		if pc == path {
			return true
		}
	}
	return false
}

// Covers reports whether the server-side store handles path: the install
// list and static assets.
func (p Policy) Covers(path string) bool {
	return p.Precached(path) || strings.HasPrefix(path, "/static/")
}
