package talent

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidInput marks a profile or posting that carries no scoreable data at
// all. It is the only error the scoring engine surfaces to its callers.
var ErrInvalidInput = errors.New("invalid input")

// CandidateProfile is the structured record describing a job seeker. Records
// arrive already validated by the caller; Validate only guards the invariant
// required for a meaningful score.
type CandidateProfile struct {
	Skills            []string          `yaml:"skills,omitempty" json:"skills,omitempty"`
	ProfessionalTitle string            `yaml:"professional_title,omitempty" json:"professional_title,omitempty"`
	Bio               string            `yaml:"bio,omitempty" json:"bio,omitempty"`
	Experience        []ExperienceEntry `yaml:"experience,omitempty" json:"experience,omitempty"`
	Education         []EducationEntry  `yaml:"education,omitempty" json:"education,omitempty"`
	Certifications    []string          `yaml:"certifications,omitempty" json:"certifications,omitempty"`
}

// ExperienceEntry keeps the chronological order it was entered in.
type ExperienceEntry struct {
	Position    string `yaml:"position,omitempty" json:"position,omitempty"`
	Company     string `yaml:"company,omitempty" json:"company,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type EducationEntry struct {
	Degree      string `yaml:"degree,omitempty" json:"degree,omitempty"`
	Field       string `yaml:"field,omitempty" json:"field,omitempty"`
	Institution string `yaml:"institution,omitempty" json:"institution,omitempty"`
}

// Validate reports ErrInvalidInput when skills, bio and experience are all
// empty. A profile that is merely sparse still scores (at the floor).
func (p *CandidateProfile) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: candidate profile is required", ErrInvalidInput)
	}
	if len(p.Skills) > 0 || strings.TrimSpace(p.Bio) != "" || len(p.Experience) > 0 {
		return nil
	}
	return fmt.Errorf("%w: candidate profile needs at least one of skills, bio or experience", ErrInvalidInput)
}

// CandidateFromFile loads a candidate profile from a YAML document.
func CandidateFromFile(path string) (*CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidate file %q: %w", path, err)
	}

	var profile CandidateProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing candidate file %q: %w", path, err)
	}

	return &profile, nil
}
