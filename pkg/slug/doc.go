// Package slug derives URL-safe, human-readable, unique identifiers from free text.
//
// It has two halves. Make normalizes text into a token of ASCII letters and
// digits joined by a glue string. Resolve turns that token into a free slug by
// asking a caller-supplied Checker and appending a counter on collisions.
// The package never touches storage itself: everything it knows about
// existing records comes through the Checker.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/slimak/pkg/slug"
//
//	s := slug.Make("Slug's Test")
//	// Output: "slugs-test"
//
//	s = slug.Make("A æ Übérmensch", slug.Lowercase(false))
//	// Output: "A-ae-Ubermensch"
//
// # Normalization
//
// Make applies, in order: markup stripping, custom replacements, stripping of
// listed characters, transliteration, optional lowercasing, "&" → " and ",
// apostrophe removal, replacement of every non-alphanumeric character with
// glue, collapsing of glue runs, trimming glue from both ends and the length
// limit. An input with nothing meaningful left yields "":
//
//	slug.Make("   ")               // ""
//	slug.Make("<b>--</b>")         // ""
//	slug.Make("Slug && Test")      // "slug-and-and-test"
//	slug.Make("2024")              // "2024"
//
// # Configuration Options
//
// Lowercase controls case conversion (default true):
//
//	slug.Make("Slug Test", slug.Lowercase(false))
//	// Output: "Slug-Test"
//
// Separator sets the glue between words and before the counter (default "-"):
//
//	slug.Make("Slug Test", slug.Separator("_"))
//	// Output: "slug_test"
//
// A glue containing letters or digits is replaced with "-".
//
// MaxLength cuts the slug to n runes and trims trailing glue. Counter
// suffixes are kept inside the limit by cutting the base instead:
//
//	slug.Make("This is a very long title", slug.MaxLength(20))
//	// Output: "this-is-a-very-long"
//
// StripChars removes characters before anything else sees them, and
// CustomReplace substitutes strings, longest key first:
//
//	slug.Make("Price: $1.000", slug.StripChars("$:."))
//	// Output: "price-1000"
//
//	slug.Make("C++ and C", slug.CustomReplace(map[string]string{"C++": "cpp"}))
//	// Output: "cpp-and-c"
//
// ReservedSlugs lists slugs that are never assigned. Matching ignores case
// unless ReservedMatchCase(true) is set:
//
//	g := slug.New(slug.ReservedSlugs("admin", "new"))
//	g.Resolve(ctx, "admin", nil)
//	// Output: "admin-1"
//
// WithTransliterator swaps the ASCII mapping. Unidecode (default) covers any
// script; Decompose only strips Latin diacritics and drops the rest:
//
//	slug.Make("Москва", slug.WithTransliterator(slug.Decompose))
//	// Output: ""
//
// Per-record-type configurations can be loaded from YAML with LoadConfigs
// and applied with WithConfig.
//
// # Uniqueness
//
// Resolve tries base, base-1, base-2, ... and returns the first candidate that
// is not reserved and that the Checker reports as free:
//
//	taken := map[string]bool{"slug-test": true, "slug-test-1": true}
//	s, err := slug.Resolve(ctx, "slug-test", slug.CheckerFunc(
//		func(_ context.Context, c string) (bool, error) { return taken[c], nil },
//	))
//	// Output: "slug-test-2"
//
// The Checker decides who counts as a collision: it should exclude the record
// being saved, and it decides whether soft-deleted records still hold their
// slugs and whether comparison ignores case. Checker errors abort resolution
// and are returned unchanged.
//
// Resolution is not atomic with persistence. Two concurrent saves may pick the
// same candidate; the storage must reject the second one with a unique
// constraint, and the caller retries.
//
// # Save Hook
//
// Records implement Sluggable. Generator.BeforeSave generates a slug only when
// the record has none, so a slug is stable until the caller clears it:
//
//	g := slug.New()
//	if _, err := g.BeforeSave(ctx, article, checker); err != nil {
//		return err
//	}
//	// persist article
//
// Clear empties the slug, forcing regeneration on the next save, and is what
// deletion calls to release a slug for reuse.
package slug
