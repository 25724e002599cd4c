package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/talentwire/matchengine/internal/logger"
	"github.com/talentwire/matchengine/internal/rank"
	"github.com/talentwire/matchengine/internal/talent"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowBreakdown = "Show skill breakdown"
	PromptDumpToFile    = "Dump results to file"
	PromptQuit          = "Quit"
)

var errExit = errors.New("exit requested")

var rankPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowBreakdown, PromptDumpToFile, PromptQuit},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a job posting corpus for one candidate",
	Run: func(cmd *cobra.Command, _ []string) {
		runRank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("candidate", "c", "", "path to the candidate profile file (YAML)")
	rankCmd.Flags().StringP("postings", "p", "", "path to the postings corpus file (YAML)")
	rankCmd.Flags().Int("min-score", 0, "drop postings scoring below this threshold")
	rankCmd.Flags().Int("limit", 0, "maximum number of ranked postings to return")
	rankCmd.Flags().BoolP("yes", "y", false, "print the ranking and exit without the interactive menu")

	viper.BindPFlag("rank.min-score", rankCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("rank.limit", rankCmd.Flags().Lookup("limit"))
}

func runRank(cmd *cobra.Command) {
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

	postingsPath := firstNonEmpty(cmd.Flag("postings").Value.String(), config.PostingsFile)
	if postingsPath == "" {
		zl.Fatal("postings corpus file is required",
			zap.String("hint", "pass --postings or set postings-file in the configuration file"),
		)
	}

	profile, err := talent.CandidateFromFile(candidatePath)
	if err != nil {
		zl.Fatal("loading candidate profile", zap.Error(err))
	}

	postings, err := talent.PostingsFromFile(postingsPath)
	if err != nil {
		zl.Fatal("loading postings corpus", zap.Error(err))
	}

	zl.Info("ranking postings for candidate",
		zap.Int("corpus_size", postings.Len()),
		zap.String("candidate_file", candidatePath),
	)

	engine, err := buildEngine(ctx, config, zl)
	if err != nil {
		zl.Fatal("building the scoring engine", zap.Error(err))
	}

	ranker := rank.New(engine, zl)
	ranked, err := ranker.Rank(ctx, profile, postings, rankOptions(config))
	if err != nil {
		zl.Fatal("ranking failed", zap.Error(err))
	}

	if len(ranked) == 0 {
		zl.Info("exiting", zap.String("reason", "no postings cleared the minimum score"))
		return
	}

	printRanking(ranked)

	if cmd.Flag("yes").Value.String() == "true" {
		return
	}

	for {
		_, action, err := rankPrompt.Run()
		if err != nil {
			zl.Fatal("exiting", zap.Error(err))
		}

		if err := handleRankAction(action, ranked, zl); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			zl.Fatal("handling action", zap.Error(err))
		}
	}
}

func rankOptions(config *Config) rank.Options {
	opts := rank.DefaultOptions()

	if v := viper.GetInt("rank.min-score"); v > 0 {
		opts.MinScore = v
	}
	if v := viper.GetInt("rank.limit"); v > 0 {
		opts.Limit = v
	}
	if config != nil && config.Rank != nil && config.Rank.Concurrency > 0 {
		opts.Concurrency = config.Rank.Concurrency
	}

	return opts
}

func handleRankAction(action string, ranked []talent.RankedMatch, zl *zap.Logger) error {
	switch action {
	case PromptShowBreakdown:
		for _, entry := range ranked {
			fmt.Println()
			printResult(entry.Posting, entry.Result)
		}
	case PromptDumpToFile:
		path, err := talent.DumpToTmpFile(ranked)
		if err != nil {
			return fmt.Errorf("dumping results: %w", err)
		}
		zl.Info("results dumped", zap.String("path", path))
	case PromptQuit:
		return errExit
	}

	return nil
}

func printRanking(ranked []talent.RankedMatch) {
	fmt.Printf("%-4s %-40s %-7s %s\n", "#", "POSTING", "SCORE", "SOURCE")
	for i, entry := range ranked {
		title := entry.Posting.Title
		if title == "" {
			title = entry.Posting.ID
		}
		fmt.Printf("%-4d %-40s %-7d %s\n", i+1, title, entry.Result.Score, entry.Result.Source)
	}
}
