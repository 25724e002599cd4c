package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/talentwire/matchengine/internal/ai"
	"github.com/talentwire/matchengine/internal/logger"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Scorer implements ai.SemanticScorer on top of the Gemini API. Failures of
// any kind (transport, timeout, malformed payload, out-of-range score) are
// reported uniformly as ai.ErrUnavailable; the provider response is never
// partially trusted.
type Scorer struct {
	generator contentGenerator
	timeout   time.Duration
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultTimeout      = 20 * time.Second
	defaultMaxLogLength = 200
)

func NewScorer(generator contentGenerator, log *zap.Logger, timeout time.Duration, maxLogLength int) *Scorer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		timeout:   timeout,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Score sends both texts to Gemini and parses the structured verdict. Exactly
// one outbound call is made per invocation; there are no retries here.
func (s *Scorer) Score(ctx context.Context, candidateText, jobText string) (*ai.Assessment, error) {
	if strings.TrimSpace(candidateText) == "" {
		return nil, fmt.Errorf("candidate text is required")
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, fmt.Errorf("job text is required")
	}

	prompt := buildPrompt(candidateText, jobText)

	s.logger.Debug("gemini scoring request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.GenerateContent(callCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrUnavailable, err)
	}

	s.logger.Debug("gemini scoring response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrUnavailable, err)
	}

	assessment.Raw = raw
	return assessment, nil
}

func buildPrompt(candidateText, jobText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate:\n{{CANDIDATE_TEXT}}\n\nJob:\n{{JOB_TEXT}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{CANDIDATE_TEXT}}", candidateText)
	prompt = strings.ReplaceAll(prompt, "{{JOB_TEXT}}", jobText)
	return prompt
}

// responsePayload is the provider contract: a mandatory numeric score plus
// optional skill lists and summary.
type responsePayload struct {
	Score          *float64 `mapstructure:"score"`
	MatchingSkills []string `mapstructure:"matching_skills"`
	MissingSkills  []string `mapstructure:"missing_skills"`
	ExtraSkills    []string `mapstructure:"extra_skills"`
	Summary        string   `mapstructure:"summary"`
}

func parseResponse(raw string) (*ai.Assessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	var payload responsePayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &payload,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build response decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	if payload.Score == nil {
		return nil, fmt.Errorf("gemini response has no score")
	}
	score := *payload.Score
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("gemini score %v is outside [0, 100]", score)
	}

	return &ai.Assessment{
		Score:          score,
		MatchingSkills: payload.MatchingSkills,
		MissingSkills:  payload.MissingSkills,
		ExtraSkills:    payload.ExtraSkills,
		Summary:        strings.TrimSpace(payload.Summary),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
