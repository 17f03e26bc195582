package slug

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// profile is the YAML shape of one record type. Pointers tell an omitted
// key from an explicit zero value.
type profile struct {
	Lowercase         *bool             `yaml:"lowercase"`
	Glue              *string           `yaml:"glue"`
	Replace           map[string]string `yaml:"replace"`
	Transliterator    string            `yaml:"transliterator"`
	StripChars        string            `yaml:"strip_chars"`
	Reserved          []string          `yaml:"reserved"`
	MaxLength         int               `yaml:"max_length"`
	ReservedMatchCase bool              `yaml:"reserved_match_case"`
}

// LoadConfigs reads per-record-type slug configurations from YAML.
// Omitted keys keep their DefaultConfig values.
//
// Example document:
//
//	articles:
//	  reserved: [new, edit, admin]
//	tags:
//	  lowercase: false
//	  glue: "_"
//	  transliterator: decompose
//	  max_length: 32
//	  strip_chars: "#"
//	  replace: {"+": plus}
//	  reserved_match_case: true
func LoadConfigs(r io.Reader) (map[string]Config, error) {
	var raw map[string]profile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]Config{}, nil
		}
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	configs := make(map[string]Config, len(raw))
	for name, p := range raw {
		cfg, err := p.config()
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidConfig, name, err)
		}
		configs[name] = cfg
	}
	return configs, nil
}

func (p profile) config() (Config, error) {
	cfg := DefaultConfig()
	if p.Lowercase != nil {
		cfg.Lowercase = *p.Lowercase
	}
	if p.Glue != nil {
		if !validGlue(*p.Glue) {
			return Config{}, fmt.Errorf("glue %q must not contain letters or digits", *p.Glue)
		}
		cfg.Glue = *p.Glue
	}
	if p.MaxLength < 0 {
		return Config{}, fmt.Errorf("max_length %d must not be negative", p.MaxLength)
	}
	cfg.MaxLength = p.MaxLength
	cfg.StripChars = p.StripChars
	cfg.Replacements = p.Replace
	cfg.ReservedMatchCase = p.ReservedMatchCase

	t, err := ParseTransliterator(p.Transliterator)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %q", err, p.Transliterator)
	}
	cfg.Transliterator = t
	cfg.Reserved = append(cfg.Reserved, p.Reserved...)

	return cfg, nil
}
