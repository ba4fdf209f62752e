// Package cli implements the veracity command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veracitydev/veracity/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veracity",
	Short: "Veracity - evidence-grounded fact-checking for generated text",
	Long: `Veracity extracts the verifiable factual claims from a piece of text,
gathers web evidence for each one, and reports which claims the evidence
supports and which it refutes.

Claims are extracted through a multi-stage judge pipeline (selection,
disambiguation, decomposition, validation) and each claim is verified by
an iterative search loop with a bounded number of refinement rounds.

Verdicts reflect the retrieved evidence, not ground truth.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Veracity.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("veracity v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veracity/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the config file, .env, and VERACITY_* environment
// variables, and sets up logging.
func initConfig() {
	// Load .env before reading the environment; existing variables win
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.veracity")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match VERACITY_*
	viper.SetEnvPrefix("VERACITY")
	viper.AutomaticEnv()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, config file /
// env overrides, then API keys from the environment.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	overlayString(&cfg.Judge.Provider, "judge.provider")
	overlayString(&cfg.Judge.Model, "judge.model")
	overlayString(&cfg.Judge.BaseURL, "judge.base_url")
	overlayDuration(&cfg.Judge.Timeout, "judge.timeout")
	overlayInt(&cfg.Judge.MaxTokens, "judge.max_tokens")

	overlayString(&cfg.Search.Provider, "search.provider")
	overlayInt(&cfg.Search.ResultsPerQuery, "search.results_per_query")
	overlayInt(&cfg.Search.SnippetMaxChars, "search.snippet_max_chars")
	overlayDuration(&cfg.Search.Timeout, "search.timeout")
	overlayBool(&cfg.Search.ExpandPages, "search.expand_pages")

	overlayInt(&cfg.Verification.MaxIterations, "verification.max_iterations")
	overlayInt(&cfg.Verification.TokenBudget, "verification.token_budget")
	overlayInt(&cfg.Verification.Workers, "verification.workers")

	overlayBool(&cfg.Cache.Enabled, "cache.enabled")
	overlayString(&cfg.Cache.Dir, "cache.dir")
	overlayDuration(&cfg.Cache.TTL, "cache.ttl")

	overlayBool(&cfg.Output.IncludeFooter, "output.include_footer")

	cfg.Output.Verbose = verbose

	// API keys come from the environment only, never the config file
	switch cfg.Judge.Provider {
	case "openai":
		cfg.Judge.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		cfg.Judge.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Judge.BaseURL = baseURL
		}
	}
	cfg.Search.ExaAPIKey = os.Getenv("EXA_API_KEY")
	cfg.Search.TavilyAPIKey = os.Getenv("TAVILY_API_KEY")

	return cfg
}

// requireJudgeKey validates that the configured judge backend has credentials
func requireJudgeKey(cfg *model.Config) error {
	switch cfg.Judge.Provider {
	case "openai":
		if cfg.Judge.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.Judge.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	}
	return nil
}

func overlayString(dst *string, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetString(key)
	}
}

func overlayInt(dst *int, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetInt(key)
	}
}

func overlayBool(dst *bool, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetBool(key)
	}
}

func overlayDuration(dst *time.Duration, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetDuration(key)
	}
}
