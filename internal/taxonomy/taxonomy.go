package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultDictionary []byte

// Entry maps one canonical technical term to its recognized synonyms.
type Entry struct {
	Canonical string   `yaml:"canonical"`
	Synonyms  []string `yaml:"synonyms,omitempty"`
}

// Taxonomy is a read-only dictionary of canonical skill terms. It is loaded
// once at startup and safe for concurrent lookups.
type Taxonomy struct {
	entries   []Entry
	canonical map[string]string
}

type document struct {
	Entries []Entry `yaml:"entries"`
}

// Default parses the dictionary embedded in the binary.
func Default() *Taxonomy {
	t, err := Parse(defaultDictionary)
	if err != nil {
		// The embedded document is covered by tests; a parse failure here
		// means a broken build, not a runtime condition.
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return t
}

// Load reads a taxonomy override document from the given path.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy file %q: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing taxonomy file %q: %w", path, err)
	}
	return t, nil
}

// Parse builds a Taxonomy from a YAML document of the form
// `entries: [{canonical: ..., synonyms: [...]}, ...]`.
func Parse(data []byte) (*Taxonomy, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Entries) == 0 {
		return nil, fmt.Errorf("taxonomy document contains no entries")
	}

	t := &Taxonomy{
		entries:   make([]Entry, 0, len(doc.Entries)),
		canonical: make(map[string]string),
	}

	for _, entry := range doc.Entries {
		canon := Normalize(entry.Canonical)
		if canon == "" {
			return nil, fmt.Errorf("taxonomy entry with empty canonical term")
		}

		normalized := Entry{Canonical: canon}
		t.canonical[canon] = canon
		for _, syn := range entry.Synonyms {
			s := Normalize(syn)
			if s == "" || s == canon {
				continue
			}
			normalized.Synonyms = append(normalized.Synonyms, s)
			if _, exists := t.canonical[s]; !exists {
				t.canonical[s] = canon
			}
		}
		t.entries = append(t.entries, normalized)
	}

	return t, nil
}

// Entries returns the dictionary entries in document order. The returned
// slice must not be mutated.
func (t *Taxonomy) Entries() []Entry {
	return t.entries
}

func (t *Taxonomy) Len() int {
	return len(t.entries)
}

// Canonical resolves a term or synonym to its canonical form. The second
// return value reports whether the term is known to the dictionary.
func (t *Taxonomy) Canonical(term string) (string, bool) {
	canon, ok := t.canonical[Normalize(term)]
	return canon, ok
}

// CanonicalOrSelf resolves known terms to their canonical form and passes
// unknown terms through normalized. Used to fold free-form skill lists into
// a comparable shape.
func (t *Taxonomy) CanonicalOrSelf(term string) string {
	normalized := Normalize(term)
	if canon, ok := t.canonical[normalized]; ok {
		return canon
	}
	return normalized
}

// Normalize lowercases and trims a term for case-insensitive comparison.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
