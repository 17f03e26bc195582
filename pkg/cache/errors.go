package cache

import "errors"

var (
	// ErrNotFound is returned when a key does not exist in the cache or has expired.
	ErrNotFound = errors.New("cache: entry not found")

	ErrMarshal   = errors.New("cache: failed to marshal value")
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")

	ErrEmptyRedisURL   = errors.New("cache: empty redis connection URL")
	ErrRedisConnection = errors.New("cache: failed to connect to redis")
)
