package slug

import (
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transliterator maps arbitrary Unicode text to its closest ASCII form.
// Implementations must be safe for concurrent use.
type Transliterator interface {
	Transliterate(s string) string
}

// TransliteratorFunc adapts a plain function to Transliterator.
type TransliteratorFunc func(s string) string

func (f TransliteratorFunc) Transliterate(s string) string {
	return f(s)
}

var (
	// Unidecode transliterates any script to Latin ASCII using the unidecode
	// tables: "Übérmensch" → "Ubermensch", "æ" → "ae", "люблю" → "liubliu".
	// Capital sharp s becomes "SS" rather than the table's "Ss".
	Unidecode Transliterator = TransliteratorFunc(func(s string) string {
		return unidecode.Unidecode(capitalSharpS.Replace(s))
	})

	// Decompose strips diacritics through canonical decomposition and expands
	// a few Latin ligatures and letters ("æ" → "ae", "ß" → "ss", "ł" → "l").
	// Everything else outside ASCII is dropped, so non-Latin scripts vanish.
	Decompose Transliterator = TransliteratorFunc(decompose)
)

var capitalSharpS = strings.NewReplacer("ẞ", "SS")

var latinExpansions = strings.NewReplacer(
	"Æ", "AE", "æ", "ae",
	"Œ", "OE", "œ", "oe",
	"ẞ", "SS", "ß", "ss",
	"Ø", "O", "ø", "o",
	"Ł", "L", "ł", "l",
	"Đ", "D", "đ", "d",
	"Ð", "D", "ð", "d",
	"Þ", "TH", "þ", "th",
	"ı", "i",
)

var nonASCII = runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
})

func decompose(s string) string {
	s = latinExpansions.Replace(s)

	// transform.Chain keeps internal state, one chain per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(nonASCII))
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return out
}

// ParseTransliterator returns the strategy registered under name.
// The empty name selects Unidecode.
func ParseTransliterator(name string) (Transliterator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unidecode":
		return Unidecode, nil
	case "decompose":
		return Decompose, nil
	default:
		return nil, ErrUnknownTransliterator
	}
}
