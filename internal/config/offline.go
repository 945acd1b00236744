package config

import (
	"strings"
	"time"
)

// DefaultPrecache is the list of paths the offline worker stores on install.
const DefaultPrecache = "/,/rifas,/static/css/main.css,/static/js/base.js"

// OfflineConfig defines the offline cache.  Version names the cache
// generation (rifas-cache-<Version>); bumping it makes every client and the
// server-side store drop the previous generation.  Precache lists the paths
// stored on install.  TTL bounds server-side entries, Prefix namespaces
// their Redis keys and MaxBodyBytes skips responses larger than the limit.
// MemoryEntries caps the in-process store used when Redis is down.
type OfflineConfig struct {
	Enabled       bool
	Version       string
	Precache      []string
	TTL           time.Duration
	Prefix        string
	MaxBodyBytes  int
	MemoryEntries int
}

// LoadOfflineConfig reads the OFFLINE_* variables.
func LoadOfflineConfig() OfflineConfig {
	return OfflineConfig{
		Enabled:       envBool("OFFLINE_ENABLED", true),
		Version:       envStr("OFFLINE_CACHE_VERSION", "v1"),
		Precache:      splitPaths(envStr("OFFLINE_PRECACHE", DefaultPrecache)),
		TTL:           envDur("OFFLINE_TTL", 5*time.Minute),
		Prefix:        envStr("OFFLINE_PREFIX", "offline"),
		MaxBodyBytes:  envInt("OFFLINE_MAX_BODY_BYTES", 1<<20),
		MemoryEntries: envInt("OFFLINE_MEMORY_ENTRIES", 256),
	}
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out = append(out, p)
	}
	return out
}
