package offline

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps entries under <prefix>:<cache>:<key> with a TTL.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore stores through rdb; a non-positive ttl means five minutes.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(cache, key string) string {
	return s.prefix + ":" + cache + ":" + key
}

// Get returns the entry under key; undecodable payloads read as misses.
func (s *RedisStore) Get(ctx context.Context, cache, key string) (Entry, bool, error) {
	bs, err := s.rdb.Get(ctx, s.key(cache, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := decodeEntry(bs)
	return e, ok, nil
}

// Put stores e under key with the store TTL.
func (s *RedisStore) Put(ctx context.Context, cache, key string, e Entry) error {
	payload, err := encodeEntry(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(cache, key), payload, s.ttl).Err()
}

// Caches lists the generation names found under the prefix.
func (s *RedisStore) Caches(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	iter := s.rdb.Scan(ctx, 0, s.prefix+":*", 200).Iterator()
	for iter.Next(ctx) {
		rest := strings.TrimPrefix(iter.Val(), s.prefix+":")
		name, _, ok := strings.Cut(rest, ":")
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, iter.Err()
}

// DeleteCache removes every key of a cache generation.
func (s *RedisStore) DeleteCache(ctx context.Context, cache string) error {
	iter := s.rdb.Scan(ctx, 0, s.key(cache, "*"), 200).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 200 {
			if err := s.rdb.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("delete %s: %w", cache, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return s.rdb.Del(ctx, batch...).Err()
	}
	return nil
}

// encodeEntry packs [4 bytes status][4 bytes headerLen][headerJSON][body].
func encodeEntry(e Entry) ([]byte, error) {
	hdrJSON, err := json.Marshal(e.Header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(e.Body))
	binary.BigEndian.PutUint32(out[0:4], uint32(e.Status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:], hdrJSON)
	copy(out[8+len(hdrJSON):], e.Body)
	return out, nil
}

func decodeEntry(bs []byte) (Entry, bool) {
	if len(bs) < 8 {
		return Entry{}, false
	}
	status := int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return Entry{}, false
	}
	hdr := make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
			return Entry{}, false
		}
	}
	return Entry{Status: status, Header: hdr, Body: bs[8+hlen:]}, true
}
