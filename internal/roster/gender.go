package roster

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// GenderScheme maps free-text gender input onto a closed set of values.
type GenderScheme struct {
	// Diversity is the value at least one member of every team must have
	Diversity string `toml:"diversity"`
	// Values maps each canonical value to the tokens that normalize to it
	Values map[string][]string `toml:"values"`

	index map[string]string
}

// DefaultGenderScheme returns the built-in vocabulary
func DefaultGenderScheme() *GenderScheme {
	s := &GenderScheme{
		Diversity: "Female",
		Values: map[string][]string{
			"Male":   {"male", "m", "man"},
			"Female": {"female", "f", "woman"},
			"Other":  {"other", "o", "non-binary", "nonbinary", "nb"},
		},
	}
	if err := s.build(); err != nil {
		panic(err)
	}
	return s
}

// LoadGenderScheme reads a TOML vocabulary file. An empty path yields the
// default scheme.
func LoadGenderScheme(path string) (*GenderScheme, error) {
	if path == "" {
		return DefaultGenderScheme(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading gender tokens file: %w", err)
	}
	return ParseGenderScheme(data)
}

// ParseGenderScheme decodes a TOML vocabulary
func ParseGenderScheme(data []byte) (*GenderScheme, error) {
	var s GenderScheme
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing gender tokens: %w", err)
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *GenderScheme) build() error {
	if len(s.Values) == 0 {
		return fmt.Errorf("gender scheme defines no values")
	}
	if _, ok := s.Values[s.Diversity]; !ok {
		return fmt.Errorf("diversity gender %q is not one of the defined values", s.Diversity)
	}

	s.index = make(map[string]string)
	add := func(token, canonical string) error {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			return nil
		}
		if prev, ok := s.index[token]; ok && prev != canonical {
			return fmt.Errorf("gender token %q maps to both %q and %q", token, prev, canonical)
		}
		s.index[token] = canonical
		return nil
	}
	for canonical, tokens := range s.Values {
		if err := add(canonical, canonical); err != nil {
			return err
		}
		for _, tok := range tokens {
			if err := add(tok, canonical); err != nil {
				return err
			}
		}
	}
	return nil
}

// Normalize returns the canonical value for input, matching tokens
// case-insensitively.
func (s *GenderScheme) Normalize(input string) (string, bool) {
	v, ok := s.index[strings.ToLower(strings.TrimSpace(input))]
	return v, ok
}

// Canonical lists the canonical values in sorted order
func (s *GenderScheme) Canonical() []string {
	out := make([]string, 0, len(s.Values))
	for v := range s.Values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
