// Package cache provides a small generic cache with in-memory and Redis backends.
//
// The slug stores use it to keep slug lookups off the database: a record is
// cached under its slug and invalidated whenever it is saved or deleted.
//
// # Interface
//
// [Cache] is generic over the value type V:
//
//   - Get(ctx, key) (V, error), ErrNotFound on a miss
//   - Set(ctx, key, value, ttl) error
//   - Delete(ctx, key) error
//
// TTL semantics for Set: positive expires after the duration, zero uses the
// backend default (5 minutes), negative never expires.
//
// # Backends
//
//	mem := cache.NewMemory[store.Record](
//		cache.WithDefaultTTL(time.Minute),
//		cache.WithMaxEntries(10_000),
//	)
//
//	client, err := cache.OpenRedis(ctx, cache.RedisConfig{URL: os.Getenv("REDIS_URL")})
//	if err != nil {
//		return err
//	}
//	rc := cache.NewRedis[store.Record](client, nil, cache.WithPrefix("slugs"))
//
// A custom [Marshaler] can replace the default JSON encoding for Redis.
//
// # Stampede Protection
//
// [GetOrSet] collapses concurrent misses for the same key into one call:
//
//	rec, err := cache.GetOrSet(ctx, c, "slug:hello-world", func(ctx context.Context) (store.Record, time.Duration, error) {
//		r, err := repo.FindBySlug(ctx, "hello-world")
//		return r, 0, err
//	})
package cache
