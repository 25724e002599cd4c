package rank

import (
	"context"
	"errors"
	"sort"

	"github.com/talentwire/matchengine/internal/match"
	"github.com/talentwire/matchengine/internal/talent"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options controls filtering and truncation of the ranked list.
type Options struct {
	// MinScore drops postings scoring below it.
	MinScore int
	// Limit truncates the ranked list.
	Limit int
	// Concurrency caps the number of postings scored in flight. The dominant
	// cost is the remote scorer's latency, so the fan-out is IO-bound.
	Concurrency int
}

func DefaultOptions() Options {
	return Options{
		MinScore:    30,
		Limit:       20,
		Concurrency: 4,
	}
}

// Ranker applies the scoring engine across a posting corpus for one
// candidate and orders the survivors by score.
type Ranker struct {
	engine *match.Engine
	logger *zap.Logger
}

func New(engine *match.Engine, log *zap.Logger) *Ranker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ranker{engine: engine, logger: log}
}

// Rank scores every posting independently, drops those under MinScore, sorts
// by score descending (ties keep their input order) and truncates to Limit.
// A posting that cannot be scored at all is logged and skipped; it never
// aborts the batch. An empty corpus yields an empty list, not an error.
func (r *Ranker) Rank(ctx context.Context, profile *talent.CandidateProfile, postings *talent.Postings, opts Options) ([]talent.RankedMatch, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if postings == nil || postings.Len() == 0 {
		return []talent.RankedMatch{}, nil
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultOptions().Concurrency
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultOptions().Limit
	}

	// Per-index result slots keep the fan-out order-independent while
	// preserving the corpus order for the stable tie-break below.
	results := make([]*talent.MatchResult, postings.Len())

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Concurrency)

	for idx, posting := range postings.Items {
		group.Go(func() error {
			result, err := r.engine.Score(groupCtx, profile, posting)
			if err != nil {
				if errors.Is(err, talent.ErrInvalidInput) {
					r.logger.Warn("skipping unscoreable posting",
						zap.String("posting_id", posting.ID),
						zap.Error(err),
					)
					return nil
				}
				return err
			}
			results[idx] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]talent.RankedMatch, 0, postings.Len())
	for idx, result := range results {
		if result == nil || result.Score < opts.MinScore {
			continue
		}
		ranked = append(ranked, talent.RankedMatch{
			Posting: postings.Items[idx],
			Result:  result,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})

	if len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}

	r.logger.Info("ranking completed",
		zap.Int("initial", postings.Len()),
		zap.Int("dropped", postings.Len()-len(ranked)),
		zap.Int("left", len(ranked)),
		zap.Int("min_score", opts.MinScore),
	)

	return ranked, nil
}
