package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/slimak/pkg/slug"
)

// Finder looks records up by slug.
type Finder interface {
	// FindBySlug returns the live record holding s, or ErrNotFound.
	FindBySlug(ctx context.Context, s string) (Record, error)
}

// Repository persists slugged records.
type Repository interface {
	Finder

	// Save inserts or updates rec. When rec has no slug, one is generated
	// from its name before writing; an existing slug is kept as is.
	Save(ctx context.Context, rec *Record) error

	// Delete clears the slug of rec and removes or tombstones its row.
	Delete(ctx context.Context, rec *Record) error

	// FindBySlugWithDeleted is FindBySlug including tombstoned records.
	FindBySlugWithDeleted(ctx context.Context, s string) (Record, error)

	Policy() Policy
}

// FirstBySlug returns nil instead of ErrNotFound when no record holds s.
func FirstBySlug(ctx context.Context, f Finder, s string) (*Record, error) {
	rec, err := f.FindBySlug(ctx, s)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// existsFunc looks a candidate up in storage, ignoring the row identified by self.
type existsFunc func(ctx context.Context, candidate string, self uuid.UUID) (bool, error)

// persistFunc writes rec. It must return an error wrapping ErrConflict when
// the storage rejects the slug, and must not modify rec on failure.
type persistFunc func(ctx context.Context, rec *Record) error

// saver runs the pre-save hook and the write, resolving again when a
// generated slug loses a race against a concurrent save.
type saver struct {
	*options
}

func (s saver) save(ctx context.Context, rec *Record, exists existsFunc, persist persistFunc) error {
	self := rec.ID
	check := slug.CheckerFunc(func(ctx context.Context, candidate string) (bool, error) {
		return exists(ctx, candidate, self)
	})

	for attempt := 1; ; attempt++ {
		generated, err := s.generator.BeforeSave(ctx, rec, check)
		if err != nil {
			return err
		}

		err = persist(ctx, rec)
		if err == nil {
			if generated && rec.Slug != "" {
				s.log.DebugContext(ctx, "slug generated",
					slog.String("id", rec.ID.String()),
					slog.String("slug", rec.Slug),
				)
			}
			return nil
		}

		if !generated || !errors.Is(err, ErrConflict) || attempt >= s.maxAttempts {
			if generated {
				slug.Clear(rec)
			}
			return err
		}

		s.log.WarnContext(ctx, "generated slug taken by a concurrent save, resolving again",
			slog.String("slug", rec.Slug),
			slog.Int("attempt", attempt),
		)
		slug.Clear(rec)
	}
}
