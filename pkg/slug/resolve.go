package slug

import (
	"context"
	"strconv"
)

// Checker reports whether a candidate slug is already taken.
//
// The checker owns every storage policy: excluding the record being saved,
// counting soft-deleted rows or not, comparing with or without case.
type Checker interface {
	Exists(ctx context.Context, candidate string) (bool, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, candidate string) (bool, error)

func (f CheckerFunc) Exists(ctx context.Context, candidate string) (bool, error) {
	return f(ctx, candidate)
}

// Resolve returns the first free variant of base using the given options.
// See Generator.Resolve.
func Resolve(ctx context.Context, base string, check Checker, opts ...Option) (string, error) {
	return New(opts...).Resolve(ctx, base, check)
}

// Candidate returns the n-th candidate for base: base itself for n == 0,
// base + glue + n afterwards. With MaxLength set, base is shortened so the
// whole candidate fits.
func (g *Generator) Candidate(base string, n int) string {
	if n <= 0 {
		return g.fit(base, "")
	}
	return g.fit(base, g.cfg.Glue+strconv.Itoa(n))
}

// Resolve tries base, base-1, base-2, ... and returns the first candidate
// that is neither reserved nor reported taken by check.
//
// An empty base yields "" without calling check. A nil check treats every
// non-reserved candidate as free. Errors from check are returned as is.
// There is no attempt limit: a checker that never reports a free slug keeps
// the loop running until ctx is done.
func (g *Generator) Resolve(ctx context.Context, base string, check Checker) (string, error) {
	if base == "" {
		return "", nil
	}

	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := g.Candidate(base, n)
		if g.IsReserved(candidate) {
			continue
		}
		if check == nil {
			return candidate, nil
		}

		taken, err := check.Exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
