// Package store persists records whose slug is derived from their name.
//
// Stores wire the slug engine to storage: Save runs the generator's pre-save
// hook with a checker scoped to the store's Policy, then writes the record.
// The checker never counts the record being saved, so re-saving a record
// keeps its slug.
//
//	repo := store.NewMemory()
//	rec := &store.Record{Name: "Slug Test"}
//	if err := repo.Save(ctx, rec); err != nil {
//		return err
//	}
//	// rec.Slug == "slug-test"
//
// # Policy
//
// The policy is fixed at construction:
//
//	repo := store.NewMemory(
//		store.WithSoftDelete(),          // Delete sets DeletedAt
//		store.WithIncludeDeleted(false), // tombstones release their slugs
//		store.WithMatching(store.CaseSensitive),
//	)
//
// With soft deletes, tombstoned rows block their slugs unless
// WithIncludeDeleted(false) is given. CaseInsensitive matching (default)
// treats "Slug-Test" and "slug-test" as the same slug.
//
// # Conflicts
//
// Resolution and the write are separate steps, so two concurrent saves may
// pick the same slug. The storage rejects the second write with ErrConflict;
// when the slug was generated by that save, Save clears it and resolves again
// (WithMaxAttempts, default 3). A caller-supplied slug is never replaced and
// its conflict is returned as is.
//
// # PostgreSQL
//
// Postgres runs on any DBTX. Apply Migrations with db.Migrate first:
//
//	if err := db.Migrate(ctx, pool, store.Migrations, "", logger); err != nil {
//		return err
//	}
//	repo, err := store.NewPostgres(pool, store.WithSoftDelete())
//
// A unique violation aborts the surrounding transaction, so retries only help
// when the store runs on a pool rather than inside db.WithTx.
//
// # Caching
//
// Cached puts a pkg/cache.Cache in front of any Repository:
//
//	cached := store.NewCached(repo, cache.NewMemory[store.Record](), time.Minute)
package store
