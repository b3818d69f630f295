package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/pokedex/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// AdmissionStore implements domain.AdmissionRecorder with Redis hashes:
//
//	{prefix}:total            allowed|denied counters
//	{prefix}:minute:YYYYMMDDhhmm allowed|denied per minute, expiring after ttl
//	{prefix}:group            "{group}:allowed" / "{group}:denied"
type AdmissionStore struct {
	rdb    goredis.Cmdable
	prefix string
	ttl    time.Duration
}

// AdmissionOption configures an AdmissionStore.
type AdmissionOption func(*AdmissionStore)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) AdmissionOption {
	return func(s *AdmissionStore) { s.prefix = strings.Trim(prefix, ":") }
}

// WithTTL sets the expiry of per-minute buckets.
func WithTTL(d time.Duration) AdmissionOption {
	return func(s *AdmissionStore) { s.ttl = d }
}

// NewAdmissionStore creates an AdmissionStore on rdb.
func NewAdmissionStore(rdb goredis.Cmdable, opts ...AdmissionOption) *AdmissionStore {
	s := &AdmissionStore{
		rdb:    rdb,
		prefix: "ratelimit:stats",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record increments the counters for ev in a single pipeline round trip.
func (s *AdmissionStore) Record(ctx context.Context, ev domain.AdmissionEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, bucketKey, s.ttl)
	}

	if group := strings.TrimSpace(ev.Group); group != "" {
		pipe.HIncrBy(ctx, s.prefix+":group", group+":"+field, 1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record admission: %w", err)
	}
	return nil
}
