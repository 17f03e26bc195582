package store

import (
	"time"

	"github.com/google/uuid"
)

// Record is a named row whose slug is derived from its name.
type Record struct {
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ID        uuid.UUID  `json:"id"`
}

// SlugSource returns the name.
func (r *Record) SlugSource() string { return r.Name }

// CurrentSlug returns the slug, "" when none is set.
func (r *Record) CurrentSlug() string { return r.Slug }

// SetSlug replaces the slug.
func (r *Record) SetSlug(s string) { r.Slug = s }

// Persisted reports whether the record has been saved at least once.
func (r *Record) Persisted() bool { return r.ID != uuid.Nil }

// Deleted reports whether the record carries a tombstone.
func (r *Record) Deleted() bool { return r.DeletedAt != nil }
