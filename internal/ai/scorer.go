package ai

import (
	"context"
	"errors"
)

// ErrUnavailable is returned for every remote scoring failure: network
// errors, timeouts, unparsable payloads and out-of-range scores. The
// orchestrator does not distinguish causes; any failure means fallback.
var ErrUnavailable = errors.New("semantic scorer unavailable")

// Assessment is the structured verdict of a remote scoring service. Only
// Score is mandatory in the provider response; skill lists and summary are
// optional extras.
type Assessment struct {
	Score          float64
	MatchingSkills []string
	MissingSkills  []string
	ExtraSkills    []string
	Summary        string
	Raw            string
}

// SemanticScorer scores a candidate against a posting using an external
// language or embedding model. Implementations make exactly one outbound
// call per invocation and perform no retries; retry policy belongs to the
// caller (currently: none, immediate fallback).
type SemanticScorer interface {
	Score(ctx context.Context, candidateText, jobText string) (*Assessment, error)
}
