package match

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/talentwire/matchengine/internal/taxonomy"
)

// Weights parameterizes the heuristic scorer. Skill hits weigh more than
// generic token overlap, and the final percentage is clamped because keyword
// overlap alone cannot certify a perfect match or a total mismatch.
type Weights struct {
	Skill   float64
	Generic float64
	Floor   int
	Ceiling int
}

func DefaultWeights() Weights {
	return Weights{
		Skill:   3,
		Generic: 1,
		Floor:   15,
		Ceiling: 98,
	}
}

// Breakdown is the decomposed output of one heuristic scoring pass. The three
// skill lists are pairwise disjoint by construction and each sorted.
type Breakdown struct {
	Score          int
	MatchingSkills []string
	MissingSkills  []string
	ExtraSkills    []string
}

// HeuristicScorer computes a deterministic weighted keyword/synonym overlap
// score. It is the guaranteed fallback path: no network, no randomness, same
// inputs always produce the same breakdown.
type HeuristicScorer struct {
	taxonomy *taxonomy.Taxonomy
	weights  Weights
}

func NewHeuristicScorer(tax *taxonomy.Taxonomy, weights Weights) *HeuristicScorer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	if weights.Skill <= 0 {
		weights.Skill = DefaultWeights().Skill
	}
	if weights.Generic <= 0 {
		weights.Generic = DefaultWeights().Generic
	}
	if weights.Ceiling <= 0 || weights.Ceiling > 100 {
		weights.Ceiling = DefaultWeights().Ceiling
	}
	if weights.Floor < 0 || weights.Floor > weights.Ceiling {
		weights.Floor = DefaultWeights().Floor
	}

	return &HeuristicScorer{taxonomy: tax, weights: weights}
}

// Score compares the composed candidate and job texts. Every taxonomy entry
// present in the job text contributes to the denominator; only entries the
// candidate also has contribute to the numerator. Entries the candidate has
// but the job does not ask for are reported without affecting the score.
func (s *HeuristicScorer) Score(candidateText, jobText string) Breakdown {
	candidate := normalizeText(candidateText)
	job := normalizeText(jobText)

	var numerator, denominator float64
	var matching, missing, extra []string

	for _, entry := range s.taxonomy.Entries() {
		inCandidate := containsAnyTerm(candidate, entry)
		inJob := containsAnyTerm(job, entry)

		switch {
		case inCandidate && inJob:
			matching = append(matching, entry.Canonical)
			numerator += s.weights.Skill
			denominator += s.weights.Skill
		case inJob:
			missing = append(missing, entry.Canonical)
			denominator += s.weights.Skill
		case inCandidate:
			extra = append(extra, entry.Canonical)
		}
	}

	candidateTokens := tokenSet(candidate)
	jobTokens := tokenSet(job)

	overlap := 0
	for token := range jobTokens {
		if _, ok := candidateTokens[token]; ok {
			overlap++
		}
	}
	numerator += s.weights.Generic * float64(overlap)
	denominator += s.weights.Generic * float64(len(jobTokens))

	if denominator < 1 {
		denominator = 1
	}

	raw := int(math.Round(100 * numerator / denominator))
	if raw < s.weights.Floor {
		raw = s.weights.Floor
	}
	if raw > s.weights.Ceiling {
		raw = s.weights.Ceiling
	}

	sort.Strings(matching)
	sort.Strings(missing)
	sort.Strings(extra)

	return Breakdown{
		Score:          raw,
		MatchingSkills: matching,
		MissingSkills:  missing,
		ExtraSkills:    extra,
	}
}

const minTokenLength = 3

// normalizeText lowercases the text and replaces punctuation with spaces so
// that "Node.js" and "node js" compare equal. '+' and '#' survive because
// they distinguish real terms (c++, c#).
func normalizeText(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#':
			builder.WriteRune(r)
		default:
			builder.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(builder.String()), " ")
}

// containsAnyTerm reports whether the canonical term or any synonym appears
// in the normalized text on word boundaries.
func containsAnyTerm(normalized string, entry taxonomy.Entry) bool {
	if normalized == "" {
		return false
	}
	if containsTerm(normalized, entry.Canonical) {
		return true
	}
	for _, syn := range entry.Synonyms {
		if containsTerm(normalized, syn) {
			return true
		}
	}
	return false
}

func containsTerm(normalized, term string) bool {
	needle := normalizeText(term)
	if needle == "" {
		return false
	}
	return strings.Contains(" "+normalized+" ", " "+needle+" ")
}

func tokenSet(normalized string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(normalized) {
		if len([]rune(token)) < minTokenLength {
			continue
		}
		tokens[token] = struct{}{}
	}
	return tokens
}
