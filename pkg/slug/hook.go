package slug

import "context"

// Sluggable is a record that carries a slug derived from one of its fields.
type Sluggable interface {
	// SlugSource returns the text the slug is derived from.
	SlugSource() string
	// CurrentSlug returns the stored slug, "" when none is set.
	CurrentSlug() string
	SetSlug(slug string)
}

// Clear frees the record slug so the next save regenerates it, and so a
// deleted record no longer holds it.
func Clear(rec Sluggable) {
	rec.SetSlug("")
}

// Generate recomputes the slug of rec from its source text, replacing any
// current value. A source that normalizes to nothing leaves the slug empty.
// On error rec is left untouched.
func (g *Generator) Generate(ctx context.Context, rec Sluggable, check Checker) error {
	s, err := g.Resolve(ctx, g.Make(rec.SlugSource()), check)
	if err != nil {
		return err
	}
	rec.SetSlug(s)
	return nil
}

// BeforeSave is the pre-persist hook: it generates a slug only when rec has
// none and reports whether it did. Call it once per save, before writing.
func (g *Generator) BeforeSave(ctx context.Context, rec Sluggable, check Checker) (bool, error) {
	if rec.CurrentSlug() != "" {
		return false, nil
	}
	if err := g.Generate(ctx, rec, check); err != nil {
		return false, err
	}
	return true, nil
}
