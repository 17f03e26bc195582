package store

import (
	"log/slog"

	"github.com/dmitrymomot/slimak/pkg/slug"
)

// Option configures a store.
type Option func(*options)

type options struct {
	generator      *slug.Generator
	log            *slog.Logger
	policy         Policy
	table          string
	maxAttempts    int
	includeDeleted *bool
}

func newOptions(opts []Option) *options {
	o := &options{
		policy:      Policy{Matching: CaseInsensitive},
		table:       "slugged_records",
		maxAttempts: 3,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.generator == nil {
		o.generator = slug.New()
	}
	if o.log == nil {
		o.log = slog.New(slog.DiscardHandler)
	}
	if o.policy.Matching == nil {
		o.policy.Matching = CaseInsensitive
	}
	if o.includeDeleted != nil {
		o.policy.IncludeDeleted = *o.includeDeleted
	} else {
		o.policy.IncludeDeleted = o.policy.SoftDelete
	}
	o.maxAttempts = max(o.maxAttempts, 1)

	return o
}

// WithGenerator sets the slug generator.
// Default: slug.New().
func WithGenerator(g *slug.Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// WithSlugOptions builds the slug generator from slug options.
func WithSlugOptions(opts ...slug.Option) Option {
	return func(o *options) {
		o.generator = slug.New(opts...)
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithMatching selects the collision comparison.
// Default: CaseInsensitive.
func WithMatching(m Matching) Option {
	return func(o *options) {
		o.policy.Matching = m
	}
}

// WithSoftDelete makes Delete tombstone rows. Unless WithIncludeDeleted says
// otherwise, tombstoned rows keep blocking their slugs.
func WithSoftDelete() Option {
	return func(o *options) {
		o.policy.SoftDelete = true
	}
}

// WithIncludeDeleted decides whether tombstoned rows take part in collision checks.
func WithIncludeDeleted(include bool) Option {
	return func(o *options) {
		o.includeDeleted = &include
	}
}

// WithPolicy sets the whole policy at once.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
		include := p.IncludeDeleted
		o.includeDeleted = &include
	}
}

// WithTable sets the table used by the Postgres store.
// Default: "slugged_records".
func WithTable(name string) Option {
	return func(o *options) {
		o.table = name
	}
}

// WithMaxAttempts bounds how many times Save resolves a slug again after the
// storage reported a conflict on a freshly generated one.
// Default: 3.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = n
	}
}
