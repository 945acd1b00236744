package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/metrics"
	"github.com/iliyamo/raffle-ticket-sales/internal/offline"
)

// captureWriter copies up to limit bytes of the body while forwarding it.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.size < cw.limit {
		remain := cw.limit - cw.size
		switch {
		case cw.limit <= 0:
			cw.buf.Write(b)
		case int64(len(b)) <= remain:
			cw.buf.Write(b)
		default:
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// sameOrigin trusts Sec-Fetch-Site when the browser sends it and falls back
// to comparing Origin with Host.
func sameOrigin(r *http.Request) bool {
	switch r.Header.Get("Sec-Fetch-Site") {
	case "same-origin", "none":
		return true
	case "cross-site", "same-site":
		return false
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

// OfflineCache serves the pages and assets covered by policy cache-first
// from store and stores same-origin 200 responses on a miss.  Requests
// carrying credentials are never cached.  A nil store disables it.
func OfflineCache(policy offline.Policy, store offline.Store, maxBody int) echo.MiddlewareFunc {
	if store == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			if !policy.Covers(r.URL.Path) || r.Header.Get("Authorization") != "" || hasTokenCookie(r) {
				return next(c)
			}
			same := sameOrigin(r)
			if policy.Bypass(r.Method, same) {
				metrics.RecordOfflineCache("bypass")
				return next(c)
			}

			ctx := r.Context()
			key := r.URL.RequestURI()
			cache := policy.CacheName()
			if e, ok, err := store.Get(ctx, cache, key); err != nil {
				log.WithFields(log.Fields{"key": key, "error": err}).Warn("offline cache read failed")
			} else if ok {
				metrics.RecordOfflineCache("hit")
				for k, vals := range e.Header {
					if strings.EqualFold(k, "Content-Length") {
						continue
					}
					for _, v := range vals {
						c.Response().Header().Add(k, v)
					}
				}
				c.Response().Header().Set("X-Cache", "HIT")
				c.Response().WriteHeader(e.Status)
				_, err := c.Response().Write(e.Body)
				return err
			}

			metrics.RecordOfflineCache("miss")
			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(maxBody) + 1}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")
			if err := next(c); err != nil {
				return err
			}
			if !policy.Storable(r.Method, same, cw.status) || (maxBody > 0 && cw.size > int64(maxBody)) {
				return nil
			}
			hdr := c.Response().Header().Clone()
			hdr.Del("X-Cache")
			entry := offline.Entry{Status: cw.status, Header: hdr, Body: append([]byte(nil), cw.buf.Bytes()...)}
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := store.Put(ctx, cache, key, entry); err != nil {
					log.WithFields(log.Fields{"key": key, "error": err}).Warn("offline cache write failed")
				}
			}()
			return nil
		}
	}
}

func hasTokenCookie(r *http.Request) bool {
	ck, err := r.Cookie("token")
	return err == nil && ck.Value != ""
}
