package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/slimak/pkg/cache"
)

// Cached serves FindBySlug from a cache in front of another Repository.
// Misses are loaded once per key even under concurrent lookups. Save and
// Delete drop every entry that could describe the written record.
type Cached struct {
	Repository
	cache cache.Cache[Record]
	ttl   time.Duration
}

// NewCached wraps repo. A zero ttl uses the cache's default TTL.
func NewCached(repo Repository, c cache.Cache[Record], ttl time.Duration) *Cached {
	return &Cached{Repository: repo, cache: c, ttl: ttl}
}

func (c *Cached) slugKey(s string) string {
	return "slug:" + c.Policy().Matching.Key(s)
}

func idKey(id uuid.UUID) string {
	return "id:" + id.String()
}

func (c *Cached) FindBySlug(ctx context.Context, s string) (Record, error) {
	return cache.GetOrSet(ctx, c.cache, c.slugKey(s), func(ctx context.Context) (Record, time.Duration, error) {
		rec, err := c.Repository.FindBySlug(ctx, s)
		if err != nil {
			return Record{}, 0, err
		}
		// The id entry lets writes find the slug entry to invalidate.
		_ = c.cache.Set(ctx, idKey(rec.ID), rec, c.ttl)
		return rec, c.ttl, nil
	})
}

func (c *Cached) Save(ctx context.Context, rec *Record) error {
	c.invalidate(ctx, rec.Slug, rec.ID)
	if err := c.Repository.Save(ctx, rec); err != nil {
		return err
	}
	c.invalidate(ctx, rec.Slug, rec.ID)
	return nil
}

// Delete clears the cache on both sides of the write, so a lookup that
// refills an entry while the delete is in flight does not outlive it.
func (c *Cached) Delete(ctx context.Context, rec *Record) error {
	// The inner Delete empties rec.Slug.
	s, id := rec.Slug, rec.ID
	c.invalidate(ctx, s, id)
	err := c.Repository.Delete(ctx, rec)
	c.invalidate(ctx, s, id)
	return err
}

func (c *Cached) invalidate(ctx context.Context, s string, id uuid.UUID) {
	if s != "" {
		_ = c.cache.Delete(ctx, c.slugKey(s))
	}
	if id == uuid.Nil {
		return
	}

	key := idKey(id)
	if prev, err := c.cache.Get(ctx, key); err == nil && prev.Slug != "" {
		_ = c.cache.Delete(ctx, c.slugKey(prev.Slug))
	}
	_ = c.cache.Delete(ctx, key)
}

var _ Repository = (*Cached)(nil)
