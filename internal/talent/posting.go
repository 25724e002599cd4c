package talent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// JobPosting is the structured record describing an open role.
type JobPosting struct {
	ID                      string   `yaml:"id,omitempty" json:"id,omitempty"`
	Title                   string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description             string   `yaml:"description,omitempty" json:"description,omitempty"`
	Requirements            string   `yaml:"requirements,omitempty" json:"requirements,omitempty"`
	PreferredQualifications string   `yaml:"preferred_qualifications,omitempty" json:"preferred_qualifications,omitempty"`
	Skills                  []string `yaml:"skills,omitempty" json:"skills,omitempty"`
}

// Validate reports ErrInvalidInput when the posting has no text fields and no
// skill list, since nothing can be compared against it.
func (j *JobPosting) Validate() error {
	if j == nil {
		return fmt.Errorf("%w: job posting is required", ErrInvalidInput)
	}
	if strings.TrimSpace(j.Description) != "" ||
		strings.TrimSpace(j.Requirements) != "" ||
		strings.TrimSpace(j.PreferredQualifications) != "" ||
		len(j.Skills) > 0 {
		return nil
	}
	return fmt.Errorf("%w: job posting needs a description, requirements or skills", ErrInvalidInput)
}

// Postings is a corpus of open postings handed to the ranker.
type Postings struct {
	Items []*JobPosting `yaml:"postings" json:"postings"`
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) FindByID(id string) *JobPosting {
	for _, posting := range p.Items {
		if posting.ID == id {
			return posting
		}
	}
	return nil
}

// PostingFromFile loads a single posting from a YAML document.
func PostingFromFile(path string) (*JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading posting file %q: %w", path, err)
	}

	var posting JobPosting
	if err := yaml.Unmarshal(data, &posting); err != nil {
		return nil, fmt.Errorf("parsing posting file %q: %w", path, err)
	}

	return &posting, nil
}

// PostingsFromFile loads a posting corpus from a YAML document with a
// top-level `postings:` list.
func PostingsFromFile(path string) (*Postings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading postings file %q: %w", path, err)
	}

	var postings Postings
	if err := yaml.Unmarshal(data, &postings); err != nil {
		return nil, fmt.Errorf("parsing postings file %q: %w", path, err)
	}

	return &postings, nil
}
