package distractor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode"

	"gopkg.in/yaml.v3"

	"qa-quiz-service/internal/domain"
)

// Script selects the language of fallback phrases.
type Script string

const (
	ScriptHan   Script = "zh"
	ScriptLatin Script = "en"
)

// Catalog is the composable substitution configuration: a generic dictionary, per-domain
// overlays merged at call time, topic keywords and fallback phrases. It is never mutated
// after construction; Extend returns a new catalog.
type Catalog struct {
	Generic   Dictionary
	Domains   map[domain.Domain]Dictionary
	Topics    map[domain.Domain][]string
	Fallbacks map[Script][]string
}

// For merges the overlay for d on top of the generic dictionary.
func (c *Catalog) For(d domain.Domain) Dictionary {
	return c.Generic.Merge(c.Domains[d])
}

// FallbackPhrases returns the hedge statements written in the script of answer.
func (c *Catalog) FallbackPhrases(answer string) []string {
	return c.Fallbacks[scriptOf(answer)]
}

// Extend layers other on top of c and returns the result.
func (c *Catalog) Extend(other *Catalog) *Catalog {
	out := &Catalog{
		Generic:   c.Generic.Merge(other.Generic),
		Domains:   make(map[domain.Domain]Dictionary, len(c.Domains)),
		Topics:    make(map[domain.Domain][]string, len(c.Topics)),
		Fallbacks: make(map[Script][]string, len(c.Fallbacks)),
	}
	for d, dict := range c.Domains {
		out.Domains[d] = dict
	}
	for d, dict := range other.Domains {
		out.Domains[d] = out.Domains[d].Merge(dict)
	}
	for d, words := range c.Topics {
		out.Topics[d] = append([]string(nil), words...)
	}
	for d, words := range other.Topics {
		out.Topics[d] = append(out.Topics[d], words...)
	}
	for s, phrases := range c.Fallbacks {
		out.Fallbacks[s] = append([]string(nil), phrases...)
	}
	for s, phrases := range other.Fallbacks {
		out.Fallbacks[s] = phrases
	}
	return out
}

func scriptOf(s string) Script {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return ScriptHan
		}
	}
	return ScriptLatin
}

type catalogFile struct {
	Generic   []Substitution                   `yaml:"generic"`
	Domains   map[domain.Domain][]Substitution `yaml:"domains"`
	Topics    map[domain.Domain][]string       `yaml:"topics"`
	Fallbacks map[Script][]string              `yaml:"fallbacks"`
}

// ParseCatalog decodes a YAML catalog overlay. Unknown fields and domains are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}

	c := &Catalog{
		Generic:   NewDictionary(f.Generic...),
		Domains:   make(map[domain.Domain]Dictionary, len(f.Domains)),
		Topics:    make(map[domain.Domain][]string, len(f.Topics)),
		Fallbacks: f.Fallbacks,
	}
	for d, subs := range f.Domains {
		if _, err := domain.ParseDomain(string(d)); err != nil || d == domain.DomainNone {
			return nil, fmt.Errorf("parse dictionary: %w %q", domain.ErrUnknownDomain, d)
		}
		c.Domains[d] = NewDictionary(subs...)
	}
	for d, words := range f.Topics {
		if _, err := domain.ParseDomain(string(d)); err != nil {
			return nil, fmt.Errorf("parse dictionary: %w %q", domain.ErrUnknownDomain, d)
		}
		c.Topics[d] = words
	}
	return c, nil
}

// LoadCatalogFile reads a YAML overlay from path and layers it over DefaultCatalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	overlay, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	return DefaultCatalog().Extend(overlay), nil
}
