package slug

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/slimak/pkg/sanitizer"
)

// spellOut expands ampersands and drops apostrophes so "Slug's" stays one word.
// The padding keeps "&&" as two separate words: "Slug&&Test" → "Slug-and-and-Test".
var spellOut = strings.NewReplacer("&", " and ", "'", "", "’", "")

// Make converts text into a slug token using the given options.
// It returns "" when text holds nothing that survives normalization.
//
//	slug.Make("Slug's Test")                    // "slugs-test"
//	slug.Make("Slug Test", slug.Separator("_")) // "slug_test"
func Make(text string, opts ...Option) string {
	return New(opts...).Make(text)
}

// Make converts text into a slug token. Stages, in order: strip markup,
// apply custom replacements and strip characters, transliterate, lowercase,
// spell out "&" and drop apostrophes, replace every non-alphanumeric character
// with glue, collapse glue runs, trim glue and cut to MaxLength.
func (g *Generator) Make(text string) string {
	if text == "" {
		return ""
	}

	s := sanitizer.PlainText(text)
	if g.replacer != nil {
		s = g.replacer.Replace(s)
	}
	if g.cfg.StripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(g.cfg.StripChars, r) {
				return -1
			}
			return r
		}, s)
	}
	s = g.cfg.Transliterator.Transliterate(s)
	if g.cfg.Lowercase {
		s = strings.ToLower(s)
	}
	s = spellOut.Replace(s)
	s = glueNonAlnum(s, g.cfg.Glue)

	if glue := g.cfg.Glue; glue != "" {
		s = collapseGlue(s, glue)
		s = trimGlue(s, glue)
	}

	return g.fit(s, "")
}

// fit joins base and suffix within MaxLength, cutting base and trimming the
// glue left dangling by the cut. A suffix that cannot fit is kept whole.
func (g *Generator) fit(base, suffix string) string {
	limit := g.cfg.MaxLength
	if limit <= 0 || utf8.RuneCountInString(base)+utf8.RuneCountInString(suffix) <= limit {
		return base + suffix
	}

	room := limit - utf8.RuneCountInString(suffix)
	if room <= 0 {
		return base + suffix
	}
	head := truncate(base, room)
	if glue := g.cfg.Glue; glue != "" {
		head = trimGlue(head, glue)
	}
	return head + suffix
}

func truncate(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

func glueNonAlnum(s, glue string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isAlnum(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteString(glue)
	}
	return b.String()
}

func collapseGlue(s, glue string) string {
	double := glue + glue
	for strings.Contains(s, double) {
		s = strings.ReplaceAll(s, double, glue)
	}
	return s
}

func trimGlue(s, glue string) string {
	for strings.HasPrefix(s, glue) {
		s = s[len(glue):]
	}
	for strings.HasSuffix(s, glue) {
		s = s[:len(s)-len(glue)]
	}
	return s
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
