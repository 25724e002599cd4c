package cmd

import (
	"context"
	"log"
	"time"

	"github.com/talentwire/matchengine/internal/ai"
	"github.com/talentwire/matchengine/internal/ai/gemini"
	"github.com/talentwire/matchengine/internal/logger"
	"github.com/talentwire/matchengine/internal/match"
	"github.com/talentwire/matchengine/internal/secrets"
	"github.com/talentwire/matchengine/internal/taxonomy"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "matchengine"

	geminiAPIKeyEnv = "GEMINI_API_KEY"
)

type Config struct {
	CandidateFile string           `mapstructure:"candidate-file"`
	PostingsFile  string           `mapstructure:"postings-file"`
	TaxonomyFile  string           `mapstructure:"taxonomy-file"`
	Heuristic     *HeuristicConfig `mapstructure:"heuristic"`
	AI            *AIConfig        `mapstructure:"ai"`
	Rank          *RankConfig      `mapstructure:"rank"`
}

type HeuristicConfig struct {
	SkillWeight   float64 `mapstructure:"skill-weight"`
	GenericWeight float64 `mapstructure:"generic-weight"`
	Floor         int     `mapstructure:"floor"`
	Ceiling       int     `mapstructure:"ceiling"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout-seconds"`
	MaxLogLength   int    `mapstructure:"max-log-length"`
}

type RankConfig struct {
	MinScore    int `mapstructure:"min-score"`
	Limit       int `mapstructure:"limit"`
	Concurrency int `mapstructure:"concurrency"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "matchengine scores candidate profiles against job postings and ranks a posting corpus",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is matchengine.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The engine runs fine without a config file; flags and defaults cover
	// everything but the Gemini credentials.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

// loadTaxonomy returns the embedded dictionary unless the config points at an
// override file.
func loadTaxonomy(config *Config) (*taxonomy.Taxonomy, error) {
	if config != nil && config.TaxonomyFile != "" {
		return taxonomy.Load(config.TaxonomyFile)
	}
	return taxonomy.Default(), nil
}

func heuristicWeights(config *Config) match.Weights {
	weights := match.DefaultWeights()
	if config == nil || config.Heuristic == nil {
		return weights
	}

	h := config.Heuristic
	if h.SkillWeight > 0 {
		weights.Skill = h.SkillWeight
	}
	if h.GenericWeight > 0 {
		weights.Generic = h.GenericWeight
	}
	if h.Floor > 0 {
		weights.Floor = h.Floor
	}
	if h.Ceiling > 0 {
		weights.Ceiling = h.Ceiling
	}
	return weights
}

// buildSemanticScorer wires the configured remote provider. A missing API key
// or disabled provider is not an error: the engine simply runs on the
// heuristic path.
func buildSemanticScorer(ctx context.Context, config *Config, zl *zap.Logger) ai.SemanticScorer {
	if config == nil || config.AI == nil || !config.AI.Enabled {
		zl.Debug("semantic scoring disabled; heuristic only")
		return nil
	}

	gcfg := config.AI.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gcfg.APIKey,
		File:  gcfg.APIKeyFile,
		Env:   geminiAPIKeyEnv,
	})
	if err != nil {
		zl.Warn("semantic scorer not configured; falling back to heuristic scoring",
			zap.Error(err),
			zap.String("hint", "set "+geminiAPIKeyEnv+" or ai.gemini.api-key in the configuration file"),
		)
		return nil
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model)
	if err != nil {
		zl.Warn("creating gemini client failed; falling back to heuristic scoring", zap.Error(err))
		return nil
	}

	scorerLogger := logger.WithScorerFields(zl, config.AI.Provider, generator.Model())
	timeout := time.Duration(gcfg.TimeoutSeconds) * time.Second

	return gemini.NewScorer(generator, scorerLogger, timeout, gcfg.MaxLogLength)
}

// buildEngine assembles the scoring engine from the resolved config.
func buildEngine(ctx context.Context, config *Config, zl *zap.Logger) (*match.Engine, error) {
	tax, err := loadTaxonomy(config)
	if err != nil {
		return nil, err
	}

	semantic := buildSemanticScorer(ctx, config, zl)
	return match.NewEngine(tax, semantic, zl, heuristicWeights(config)), nil
}
