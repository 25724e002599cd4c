package talent

import (
	"encoding/json"
	"os"
)

// Source tags which scorer produced a MatchResult. Callers rely on it to
// distinguish provenance.
type Source string

const (
	// SourceSemantic marks results produced by the remote scoring service.
	SourceSemantic Source = "semantic"
	// SourceHeuristic marks results produced by the local keyword scorer.
	SourceHeuristic Source = "heuristic"
)

// MatchResult is the output of one candidate/posting scoring operation.
// It is created fresh per call and never mutated afterwards. Persistence,
// if any, is the caller's business.
type MatchResult struct {
	Score          int      `json:"score"`
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	ExtraSkills    []string `json:"extra_skills"`
	Summary        string   `json:"summary"`
	Source         Source   `json:"source"`
}

// RankedMatch pairs a posting with its result, in ranked order.
type RankedMatch struct {
	Posting *JobPosting  `json:"posting"`
	Result  *MatchResult `json:"result"`
}

// DumpToTmpFile writes the ranked results to a temporary JSON file and
// returns its path.
func DumpToTmpFile(matches []RankedMatch) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(matches); err != nil {
		return "", err
	}
	return file.Name(), nil
}
