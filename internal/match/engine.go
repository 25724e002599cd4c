package match

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/talentwire/matchengine/internal/ai"
	"github.com/talentwire/matchengine/internal/talent"
	"github.com/talentwire/matchengine/internal/taxonomy"
	"go.uber.org/zap"
)

// Engine scores one candidate against one posting. It tries the semantic
// scorer first when one is configured and falls back to the heuristic scorer
// on any failure, so ordinary scoring never errors out. Engines are safe for
// concurrent use.
type Engine struct {
	taxonomy  *taxonomy.Taxonomy
	heuristic *HeuristicScorer
	semantic  ai.SemanticScorer
	logger    *zap.Logger
}

// NewEngine builds the scoring orchestrator. semantic may be nil, in which
// case every score comes from the heuristic path.
func NewEngine(tax *taxonomy.Taxonomy, semantic ai.SemanticScorer, log *zap.Logger, weights Weights) *Engine {
	if tax == nil {
		tax = taxonomy.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		taxonomy:  tax,
		heuristic: NewHeuristicScorer(tax, weights),
		semantic:  semantic,
		logger:    log,
	}
}

// Score produces a fresh MatchResult for the pair. The only error it can
// return is talent.ErrInvalidInput for a profile or posting with nothing to
// compare; semantic scorer failures are recovered locally.
func (e *Engine) Score(ctx context.Context, profile *talent.CandidateProfile, posting *talent.JobPosting) (*talent.MatchResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := posting.Validate(); err != nil {
		return nil, err
	}

	candidateText := talent.ComposeCandidateText(profile)
	jobText := talent.ComposeJobText(posting)

	if e.semantic != nil {
		assessment, err := e.semantic.Score(ctx, candidateText, jobText)
		if err == nil {
			return e.wrapSemantic(assessment), nil
		}

		e.logger.Warn("semantic scoring failed, falling back to heuristic",
			zap.String("posting_id", posting.ID),
			zap.Error(err),
		)
	}

	return e.wrapHeuristic(candidateText, jobText), nil
}

// SemanticConfigured reports whether a remote scorer is wired in. When false
// every result carries the heuristic source tag.
func (e *Engine) SemanticConfigured() bool {
	return e.semantic != nil
}

func (e *Engine) wrapSemantic(assessment *ai.Assessment) *talent.MatchResult {
	matching, missing, extra := e.partition(
		assessment.MatchingSkills,
		assessment.MissingSkills,
		assessment.ExtraSkills,
	)

	score := int(math.Round(assessment.Score))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	summary := assessment.Summary
	if summary == "" {
		summary = synthesizeSummary(score, matching, missing, extra)
	}

	return &talent.MatchResult{
		Score:          score,
		MatchingSkills: matching,
		MissingSkills:  missing,
		ExtraSkills:    extra,
		Summary:        summary,
		Source:         talent.SourceSemantic,
	}
}

func (e *Engine) wrapHeuristic(candidateText, jobText string) *talent.MatchResult {
	breakdown := e.heuristic.Score(candidateText, jobText)

	return &talent.MatchResult{
		Score:          breakdown.Score,
		MatchingSkills: breakdown.MatchingSkills,
		MissingSkills:  breakdown.MissingSkills,
		ExtraSkills:    breakdown.ExtraSkills,
		Summary:        synthesizeSummary(breakdown.Score, breakdown.MatchingSkills, breakdown.MissingSkills, breakdown.ExtraSkills),
		Source:         talent.SourceHeuristic,
	}
}

// partition canonicalizes the provider's skill lists and makes them pairwise
// disjoint: a skill claimed in several lists counts as matching first, then
// missing, then extra.
func (e *Engine) partition(matchingIn, missingIn, extraIn []string) (matching, missing, extra []string) {
	seen := make(map[string]struct{})

	fold := func(terms []string) []string {
		var kept []string
		for _, term := range terms {
			canon := e.taxonomy.CanonicalOrSelf(term)
			if canon == "" {
				continue
			}
			if _, dup := seen[canon]; dup {
				continue
			}
			seen[canon] = struct{}{}
			kept = append(kept, canon)
		}
		sort.Strings(kept)
		return kept
	}

	matching = fold(matchingIn)
	missing = fold(missingIn)
	extra = fold(extraIn)
	return matching, missing, extra
}

func synthesizeSummary(score int, matching, missing, extra []string) string {
	return fmt.Sprintf("%d matching, %d missing and %d extra skills; estimated fit %d/100.",
		len(matching), len(missing), len(extra), score)
}
