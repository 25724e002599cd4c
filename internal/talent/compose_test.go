package talent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullProfile() *CandidateProfile {
	return &CandidateProfile{
		Skills:            []string{"Go", "PostgreSQL"},
		ProfessionalTitle: "Backend Engineer",
		Bio:               "Builds boring reliable services.",
		Experience: []ExperienceEntry{
			{Position: "Engineer", Company: "Acme", Description: "Payments platform"},
			{Position: "Intern", Company: "Initech"},
		},
		Education: []EducationEntry{
			{Degree: "BSc", Field: "Computer Science", Institution: "State University"},
		},
		Certifications: []string{"CKA"},
	}
}

func TestComposeCandidateTextFieldOrder(t *testing.T) {
	text := ComposeCandidateText(fullProfile())

	assert.Equal(t,
		"Skills: Go, PostgreSQL. "+
			"Title: Backend Engineer. "+
			"Bio: Builds boring reliable services.. "+
			"Experience: Engineer, Acme, Payments platform; Intern, Initech. "+
			"Education: BSc, Computer Science, State University. "+
			"Certifications: CKA",
		text)
}

func TestComposeCandidateTextOmitsEmptyFields(t *testing.T) {
	profile := &CandidateProfile{
		Skills: []string{"React", "  "},
		Bio:    "   ",
	}

	text := ComposeCandidateText(profile)
	assert.Equal(t, "Skills: React", text)
	assert.NotContains(t, text, "Bio:")
	assert.NotContains(t, text, "Experience:")

	assert.Empty(t, ComposeCandidateText(&CandidateProfile{}))
	assert.Empty(t, ComposeCandidateText(nil))
}

func TestComposeCandidateTextIsIdempotent(t *testing.T) {
	profile := fullProfile()

	first := ComposeCandidateText(profile)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ComposeCandidateText(profile))
	}
}

func TestComposeJobText(t *testing.T) {
	posting := &JobPosting{
		Description:             "We build things.",
		Requirements:            "React, MongoDB, CSS",
		PreferredQualifications: "GraphQL",
		Skills:                  []string{"react", "mongodb"},
	}

	text := ComposeJobText(posting)
	assert.Equal(t,
		"Description: We build things.. "+
			"Requirements: React, MongoDB, CSS. "+
			"Preferred Qualifications: GraphQL. "+
			"Skills: react, mongodb",
		text)
}

func TestComposeJobTextOmitsEmptyFields(t *testing.T) {
	posting := &JobPosting{Requirements: "Go"}

	text := ComposeJobText(posting)
	assert.Equal(t, "Requirements: Go", text)
	assert.NotContains(t, text, "Description:")

	assert.Empty(t, ComposeJobText(nil))
}

func TestCandidateValidate(t *testing.T) {
	cases := []struct {
		name    string
		profile *CandidateProfile
		wantErr bool
	}{
		{name: "skills only", profile: &CandidateProfile{Skills: []string{"Go"}}},
		{name: "bio only", profile: &CandidateProfile{Bio: "ten years of yelling at computers"}},
		{name: "experience only", profile: &CandidateProfile{Experience: []ExperienceEntry{{Position: "SRE"}}}},
		{name: "education alone is not scoreable", profile: &CandidateProfile{Education: []EducationEntry{{Degree: "BSc"}}}, wantErr: true},
		{name: "empty", profile: &CandidateProfile{}, wantErr: true},
		{name: "nil", profile: nil, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.profile.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPostingValidate(t *testing.T) {
	cases := []struct {
		name    string
		posting *JobPosting
		wantErr bool
	}{
		{name: "description only", posting: &JobPosting{Description: "Build APIs"}},
		{name: "skills only", posting: &JobPosting{Skills: []string{"go"}}},
		{name: "whitespace only", posting: &JobPosting{Description: "   "}, wantErr: true},
		{name: "empty", posting: &JobPosting{}, wantErr: true},
		{name: "nil", posting: nil, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.posting.Validate()
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}
