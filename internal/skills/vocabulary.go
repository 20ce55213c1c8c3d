package skills

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yml
var defaultVocabulary []byte

type Category struct {
	Name   string   `yaml:"category" json:"category"`
	Skills []string `yaml:"skills" json:"skills"`
}

// Vocabulary is immutable once built; it is safe for concurrent use.
type Vocabulary struct {
	categories []Category
	terms      map[string]struct{}
}

func Parse(b []byte) (*Vocabulary, error) {
	var cats []Category
	if err := yaml.Unmarshal(b, &cats); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return New(cats)
}

func New(cats []Category) (*Vocabulary, error) {
	v := &Vocabulary{terms: make(map[string]struct{})}
	for i, c := range cats {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("vocabulary category %d has no name", i)
		}
		seen := map[string]bool{}
		var list []string
		for _, s := range c.Skills {
			s = strings.ToLower(strings.Join(strings.Fields(s), " "))
			if s == "" || seen[s] {
				continue
			}
			if n := len(strings.Fields(s)); n > 2 {
				return nil, fmt.Errorf("vocabulary term %q in %q has %d words, max 2", s, name, n)
			}
			seen[s] = true
			list = append(list, s)
			v.terms[s] = struct{}{}
		}
		v.categories = append(v.categories, Category{Name: name, Skills: list})
	}
	return v, nil
}

func (v *Vocabulary) Contains(term string) bool {
	_, ok := v.terms[term]
	return ok
}

func (v *Vocabulary) Len() int { return len(v.terms) }

// Categories returns a copy of the categories in file order.
func (v *Vocabulary) Categories() []Category {
	out := make([]Category, len(v.categories))
	for i, c := range v.categories {
		out[i] = Category{Name: c.Name, Skills: append([]string(nil), c.Skills...)}
	}
	return out
}

// CategoryOf returns the first category listing term.
func (v *Vocabulary) CategoryOf(term string) string {
	for _, c := range v.categories {
		for _, s := range c.Skills {
			if s == term {
				return c.Name
			}
		}
	}
	return ""
}

var (
	defaultOnce sync.Once
	defaultVoc  *Vocabulary
)

// Default returns the embedded vocabulary, parsed once per process.
func Default() *Vocabulary {
	defaultOnce.Do(func() {
		v, err := Parse(defaultVocabulary)
		if err != nil {
			panic(err)
		}
		defaultVoc = v
	})
	return defaultVoc
}

// Load reads a vocabulary file, or returns Default when path is empty.
func Load(path string) (*Vocabulary, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	return Parse(b)
}

// Set is a collection of lowercase skill terms without duplicates.
type Set map[string]struct{}

func NewSet(terms ...string) Set {
	s := make(Set, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

func (s Set) Has(term string) bool {
	_, ok := s[term]
	return ok
}

// Sorted returns the terms in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
