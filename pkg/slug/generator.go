package slug

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// Generator builds and resolves slugs for one record type.
// It is immutable after New and safe for concurrent use.
type Generator struct {
	reserved map[string]struct{}
	replacer *strings.Replacer
	cfg      Config
}

// New creates a Generator from DefaultConfig adjusted by opts.
func New(opts ...Option) *Generator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Transliterator == nil {
		cfg.Transliterator = Unidecode
	}
	if !validGlue(cfg.Glue) {
		cfg.Glue = DefaultConfig().Glue
	}

	g := &Generator{
		reserved: make(map[string]struct{}, len(cfg.Reserved)),
		cfg:      cfg,
	}
	for _, r := range cfg.Reserved {
		g.reserved[g.reservedKey(r)] = struct{}{}
	}

	if len(cfg.Replacements) > 0 {
		keys := slices.Collect(maps.Keys(cfg.Replacements))
		slices.SortFunc(keys, func(a, b string) int {
			return cmp.Or(cmp.Compare(len(b), len(a)), strings.Compare(a, b))
		})
		pairs := make([]string, 0, 2*len(keys))
		for _, k := range keys {
			if k != "" {
				pairs = append(pairs, k, cfg.Replacements[k])
			}
		}
		g.replacer = strings.NewReplacer(pairs...)
	}

	return g
}

// validGlue reports whether glue can be told apart from slug text.
func validGlue(glue string) bool {
	return strings.IndexFunc(glue, isAlnum) < 0
}

// Config returns a copy of the generator configuration.
func (g *Generator) Config() Config {
	cfg := g.cfg
	cfg.Reserved = append([]string(nil), g.cfg.Reserved...)
	cfg.Replacements = maps.Clone(g.cfg.Replacements)
	return cfg
}

// IsReserved reports whether s matches a reserved slug, ignoring case unless
// ReservedMatchCase is set.
func (g *Generator) IsReserved(s string) bool {
	_, ok := g.reserved[g.reservedKey(s)]
	return ok
}

func (g *Generator) reservedKey(s string) string {
	if g.cfg.ReservedMatchCase {
		return s
	}
	return strings.ToLower(s)
}
