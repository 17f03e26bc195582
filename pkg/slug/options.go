package slug

import "maps"

// Config describes how slugs are built for one record type.
type Config struct {
	// Transliterator maps text to ASCII before tokenizing.
	// Nil falls back to Unidecode.
	Transliterator Transliterator

	// Glue separates word tokens and the collision counter.
	Glue string

	// StripChars lists characters deleted before tokenizing, so they do not
	// split words.
	StripChars string

	// Replacements are applied to the plain text before transliteration.
	// Longer keys win over shorter ones sharing a prefix.
	Replacements map[string]string

	// Reserved slugs are never assigned. They are compared case-insensitively
	// unless ReservedMatchCase is set.
	Reserved []string

	// MaxLength caps the slug length in runes, counter suffix included.
	// Zero means unlimited.
	MaxLength int

	// Lowercase folds the slug to lower case.
	Lowercase bool

	// ReservedMatchCase compares reserved slugs byte for byte.
	ReservedMatchCase bool
}

// DefaultConfig returns lowercase slugs glued with "-", no reserved words
// and Unidecode transliteration.
func DefaultConfig() Config {
	return Config{
		Transliterator: Unidecode,
		Glue:           "-",
		Lowercase:      true,
	}
}

// Option configures a Generator.
type Option func(*Config)

// Lowercase controls case conversion.
// Default: true.
func Lowercase(enabled bool) Option {
	return func(c *Config) {
		c.Lowercase = enabled
	}
}

// Separator sets the glue placed between words and before the counter.
// An empty separator concatenates words. Glue containing ASCII letters or
// digits cannot be told apart from the text, so New replaces it with "-".
// Default: "-".
func Separator(glue string) Option {
	return func(c *Config) {
		c.Glue = glue
	}
}

// ReservedSlugs adds slugs that may never be assigned, even when free.
func ReservedSlugs(slugs ...string) Option {
	return func(c *Config) {
		c.Reserved = append(c.Reserved, slugs...)
	}
}

// ReservedMatchCase makes reserved slugs match only with identical case.
// Default: false.
func ReservedMatchCase(enabled bool) Option {
	return func(c *Config) {
		c.ReservedMatchCase = enabled
	}
}

// MaxLength caps the slug length in runes. Normalized text is cut and
// trailing glue trimmed; collision candidates shorten the base so the counter
// suffix still fits. Zero disables the limit.
// Default: 0.
func MaxLength(n int) Option {
	return func(c *Config) {
		c.MaxLength = max(n, 0)
	}
}

// StripChars deletes every listed character before tokenizing:
//
//	slug.Make("Price: $100", slug.StripChars("$:")) // "price-100"
func StripChars(chars string) Option {
	return func(c *Config) {
		c.StripChars += chars
	}
}

// CustomReplace applies literal replacements to the plain text before
// transliteration. Later calls override earlier keys.
//
//	slug.Make("Fish @ Home", slug.CustomReplace(map[string]string{"@": "at"})) // "fish-at-home"
func CustomReplace(replacements map[string]string) Option {
	return func(c *Config) {
		if c.Replacements == nil {
			c.Replacements = make(map[string]string, len(replacements))
		}
		maps.Copy(c.Replacements, replacements)
	}
}

// WithTransliterator swaps the transliteration strategy. Nil is ignored.
func WithTransliterator(t Transliterator) Option {
	return func(c *Config) {
		if t != nil {
			c.Transliterator = t
		}
	}
}

// WithConfig replaces the whole configuration, typically one loaded with LoadConfigs.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
		c.Reserved = append([]string(nil), cfg.Reserved...)
		c.Replacements = maps.Clone(cfg.Replacements)
	}
}
