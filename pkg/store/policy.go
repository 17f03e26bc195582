package store

import "strings"

// Matching decides when two slugs collide. It is chosen once per record type.
type Matching interface {
	// Equal reports whether a and b name the same slug.
	Equal(a, b string) bool
	// Key returns the canonical form of s, used for cache keys.
	Key(s string) string
	// Predicate renders the SQL condition comparing column with arg.
	Predicate(column, arg string) string
}

var (
	// CaseInsensitive treats "Slug-Test" and "slug-test" as the same slug.
	CaseInsensitive Matching = caseInsensitive{}
	// CaseSensitive compares slugs byte for byte.
	CaseSensitive Matching = caseSensitive{}
)

type caseInsensitive struct{}

func (caseInsensitive) Equal(a, b string) bool { return strings.EqualFold(a, b) }
func (caseInsensitive) Key(s string) string    { return strings.ToLower(s) }
func (caseInsensitive) Predicate(column, arg string) string {
	return "lower(" + column + ") = lower(" + arg + ")"
}

type caseSensitive struct{}

func (caseSensitive) Equal(a, b string) bool { return a == b }
func (caseSensitive) Key(s string) string    { return s }
func (caseSensitive) Predicate(column, arg string) string {
	return column + " = " + arg
}

// Policy is the collision policy of a record type.
type Policy struct {
	Matching Matching

	// SoftDelete makes Delete set a tombstone instead of removing the row.
	// A tombstoned row keeps its stored slug.
	SoftDelete bool

	// IncludeDeleted makes tombstoned rows count as collisions, so their
	// slugs are never handed out again. Without it, slugs are recycled.
	IncludeDeleted bool
}

// counts reports whether a row with the given tombstone state takes part in
// collision checks.
func (p Policy) counts(r Record) bool {
	return r.DeletedAt == nil || p.IncludeDeleted
}
