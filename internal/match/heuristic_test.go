package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentwire/matchengine/internal/talent"
	"github.com/talentwire/matchengine/internal/taxonomy"
)

func newScorer(t *testing.T) *HeuristicScorer {
	t.Helper()
	return NewHeuristicScorer(taxonomy.Default(), DefaultWeights())
}

func TestHeuristicScoreIsDeterministic(t *testing.T) {
	scorer := newScorer(t)

	candidate := "Skills: Go, PostgreSQL, Docker. Bio: platform engineer"
	job := "Requirements: Go, Kubernetes, PostgreSQL. Description: platform team"

	first := scorer.Score(candidate, job)
	for i := 0; i < 25; i++ {
		require.Equal(t, first, scorer.Score(candidate, job))
	}
}

func TestHeuristicScoreBounds(t *testing.T) {
	scorer := newScorer(t)

	cases := []struct {
		name      string
		candidate string
		job       string
	}{
		{name: "no overlap", candidate: "Skills: COBOL", job: "Requirements: Rust, WebAssembly"},
		{name: "full overlap", candidate: "go docker", job: "go docker"},
		{name: "both empty", candidate: "", job: ""},
		{name: "empty candidate", candidate: "", job: "Requirements: Go, Docker, Kubernetes"},
		{name: "empty job", candidate: "Skills: Go", job: ""},
	}

	weights := DefaultWeights()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			breakdown := scorer.Score(tc.candidate, tc.job)
			assert.GreaterOrEqual(t, breakdown.Score, weights.Floor)
			assert.LessOrEqual(t, breakdown.Score, weights.Ceiling)
		})
	}
}

func TestHeuristicSkillSetsAreDisjoint(t *testing.T) {
	scorer := newScorer(t)

	breakdown := scorer.Score(
		"Skills: React, Node.js, Docker, AWS. Bio: frontend heavy full-stack",
		"Requirements: React, TypeScript, CSS, Docker. Description: product team",
	)

	seen := make(map[string]int)
	for _, s := range breakdown.MatchingSkills {
		seen[s]++
	}
	for _, s := range breakdown.MissingSkills {
		seen[s]++
	}
	for _, s := range breakdown.ExtraSkills {
		seen[s]++
	}

	for skill, count := range seen {
		assert.Equalf(t, 1, count, "skill %q appears in %d sets", skill, count)
	}
}

func TestHeuristicMonotonicity(t *testing.T) {
	scorer := newScorer(t)

	job := talent.ComposeJobText(&talent.JobPosting{
		Requirements: "Python, Docker",
	})

	without := scorer.Score(talent.ComposeCandidateText(&talent.CandidateProfile{
		Skills: []string{"Python"},
	}), job)

	with := scorer.Score(talent.ComposeCandidateText(&talent.CandidateProfile{
		Skills: []string{"Python", "Docker"},
	}), job)

	assert.GreaterOrEqual(t, with.Score, without.Score)
	assert.Contains(t, with.MatchingSkills, "docker")
	assert.Contains(t, without.MissingSkills, "docker")
}

func TestHeuristicEndToEndExample(t *testing.T) {
	scorer := newScorer(t)

	candidate := talent.ComposeCandidateText(&talent.CandidateProfile{
		Skills: []string{"React", "Node.js"},
	})
	job := talent.ComposeJobText(&talent.JobPosting{
		Requirements: "React, MongoDB, CSS",
	})

	breakdown := scorer.Score(candidate, job)

	assert.Equal(t, []string{"react"}, breakdown.MatchingSkills)
	assert.Contains(t, breakdown.MissingSkills, "mongodb")
	assert.Contains(t, breakdown.MissingSkills, "css")
	assert.Contains(t, breakdown.ExtraSkills, "node.js")

	weights := DefaultWeights()
	assert.GreaterOrEqual(t, breakdown.Score, weights.Floor)
	assert.LessOrEqual(t, breakdown.Score, weights.Ceiling)
	// Partial overlap must not clamp to either bound.
	assert.Greater(t, breakdown.Score, weights.Floor)
	assert.Less(t, breakdown.Score, weights.Ceiling)
}

func TestHeuristicSynonymsMatch(t *testing.T) {
	scorer := newScorer(t)

	breakdown := scorer.Score(
		"Skills: Node.js, Postgres",
		"Requirements: NodeJS and PostgreSQL experience",
	)

	assert.Contains(t, breakdown.MatchingSkills, "node.js")
	assert.Contains(t, breakdown.MatchingSkills, "postgresql")
	assert.Empty(t, breakdown.MissingSkills)
}

func TestHeuristicCustomClamp(t *testing.T) {
	scorer := NewHeuristicScorer(taxonomy.Default(), Weights{
		Skill:   3,
		Generic: 1,
		Floor:   40,
		Ceiling: 60,
	})

	low := scorer.Score("Skills: COBOL", "Requirements: Rust, Elixir, Haskell")
	assert.Equal(t, 40, low.Score)

	high := scorer.Score("golang docker kubernetes", "golang docker kubernetes")
	assert.Equal(t, 60, high.Score)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "node js react c++", normalizeText("Node.js,  React!! C++"))
	assert.Equal(t, "", normalizeText("  ...  "))
}
