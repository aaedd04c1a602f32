// Package sequence mints human-readable sequential ids from named counters.
// Each counter is a Redis key mutated only through INCR, so concurrent
// callers always observe distinct, monotonically increasing values. Gaps are
// acceptable; values are never reused or reset.
package sequence

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ErrNoValue is returned when the store yields no usable counter value.
var ErrNoValue = fmt.Errorf("sequence: counter returned no value")

// Counter issues the next value of named sequences.
type Counter struct {
	redis *redis.Client
}

// NewCounter creates a counter backed by the given Redis client.
func NewCounter(client *redis.Client) *Counter {
	if client == nil {
		panic("sequence: redis client required")
	}
	return &Counter{redis: client}
}

// Next atomically increments the named counter and returns the new value as
// a string, matching the external id encoding.
func (c *Counter) Next(ctx context.Context, name string) (string, error) {
	value, err := c.redis.Incr(ctx, key(name)).Result()
	if err != nil {
		return "", fmt.Errorf("sequence: incr %s: %w", name, err)
	}
	if value <= 0 {
		return "", ErrNoValue
	}
	return strconv.FormatInt(value, 10), nil
}

// Current reads the counter without incrementing; 0 when never used.
func (c *Counter) Current(ctx context.Context, name string) (int64, error) {
	value, err := c.redis.Get(ctx, key(name)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sequence: read %s: %w", name, err)
	}
	return value, nil
}

func key(name string) string {
	return "seq:" + name
}
