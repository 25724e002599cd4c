package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/talentwire/matchengine/internal/logger"
	"github.com/talentwire/matchengine/internal/talent"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate profile against one job posting",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("candidate", "c", "", "path to the candidate profile file (YAML)")
	matchCmd.Flags().StringP("job", "p", "", "path to the job posting file (YAML)")

	viper.BindPFlag("candidate-file", matchCmd.Flags().Lookup("candidate"))
}

func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	candidatePath := firstNonEmpty(cmd.Flag("candidate").Value.String(), config.CandidateFile)
	if candidatePath == "" {
		zl.Fatal("candidate profile file is required",
			zap.String("hint", "pass --candidate or set candidate-file in the configuration file"),
		)
	}

	jobPath := cmd.Flag("job").Value.String()
	if jobPath == "" {
		zl.Fatal("job posting file is required", zap.String("hint", "pass --job"))
	}

	profile, err := talent.CandidateFromFile(candidatePath)
	if err != nil {
		zl.Fatal("loading candidate profile", zap.Error(err))
	}

	posting, err := talent.PostingFromFile(jobPath)
	if err != nil {
		zl.Fatal("loading job posting", zap.Error(err))
	}

	engine, err := buildEngine(ctx, config, zl)
	if err != nil {
		zl.Fatal("building the scoring engine", zap.Error(err))
	}

	result, err := engine.Score(ctx, profile, posting)
	if err != nil {
		zl.Fatal("scoring failed", zap.Error(err))
	}

	printResult(posting, result)
}

func printResult(posting *talent.JobPosting, result *talent.MatchResult) {
	title := posting.Title
	if title == "" {
		title = posting.ID
	}

	fmt.Printf("Posting:  %s\n", title)
	fmt.Printf("Score:    %d/100 (%s)\n", result.Score, result.Source)
	fmt.Printf("Matching: %s\n", joinOrDash(result.MatchingSkills))
	fmt.Printf("Missing:  %s\n", joinOrDash(result.MissingSkills))
	fmt.Printf("Extra:    %s\n", joinOrDash(result.ExtraSkills))
	fmt.Printf("Summary:  %s\n", result.Summary)
}

func joinOrDash(skills []string) string {
	if len(skills) == 0 {
		return "-"
	}
	return strings.Join(skills, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
