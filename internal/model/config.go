package model

import "time"

// Config is the full application configuration. It is built once at process
// start (defaults, config file, env, flags) and passed read-only into every
// component; no ambient lookups happen inside core logic.
type Config struct {
	Judge        JudgeConfig        `yaml:"judge" json:"judge"`
	Extraction   ExtractionConfig   `yaml:"extraction" json:"extraction"`
	Search       SearchConfig       `yaml:"search" json:"search"`
	Verification VerificationConfig `yaml:"verification" json:"verification"`
	Cache        CacheConfig        `yaml:"cache" json:"cache"`
	Output       OutputConfig       `yaml:"output" json:"output"`
}

// JudgeConfig selects and tunes the judge backend
type JudgeConfig struct {
	Provider  string        `yaml:"provider" json:"provider"` // openai, anthropic, ollama
	Model     string        `yaml:"model" json:"model"`
	APIKey    string        `yaml:"-" json:"-"` // Never serialized; env only
	BaseURL   string        `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	MaxTokens int           `yaml:"max_tokens" json:"max_tokens"`
}

// StageConfig tunes one extraction stage
type StageConfig struct {
	Completions  int     `yaml:"completions" json:"completions"`
	MinSuccesses int     `yaml:"min_successes" json:"min_successes"`
	Temperature  float32 `yaml:"temperature" json:"temperature"`
	Preceding    int     `yaml:"preceding_sentences" json:"preceding_sentences"`
	Following    int     `yaml:"following_sentences" json:"following_sentences"`
}

// ExtractionConfig tunes the claim extraction pipeline
type ExtractionConfig struct {
	Selection      StageConfig `yaml:"selection" json:"selection"`
	Disambiguation StageConfig `yaml:"disambiguation" json:"disambiguation"`
	Decomposition  StageConfig `yaml:"decomposition" json:"decomposition"`
	Validation     StageConfig `yaml:"validation" json:"validation"`
}

// SearchConfig selects and tunes the evidence retrieval backend
type SearchConfig struct {
	Provider        string        `yaml:"provider" json:"provider"` // exa, tavily
	ExaAPIKey       string        `yaml:"-" json:"-"`
	TavilyAPIKey    string        `yaml:"-" json:"-"`
	ResultsPerQuery int           `yaml:"results_per_query" json:"results_per_query"`
	SnippetMaxChars int           `yaml:"snippet_max_chars" json:"snippet_max_chars"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout"`

	// Optional page expansion: fetch each result URL and widen the snippet
	// with the page's visible text.
	ExpandPages      bool          `yaml:"expand_pages" json:"expand_pages"`
	ExpandUserAgent  string        `yaml:"expand_user_agent" json:"expand_user_agent"`
	ExpandMaxBytes   int64         `yaml:"expand_max_bytes" json:"expand_max_bytes"`
	ExpandRatePerSec float64       `yaml:"expand_rate_per_sec" json:"expand_rate_per_sec"`
	ExpandTimeout    time.Duration `yaml:"expand_timeout" json:"expand_timeout"`
}

// VerificationConfig tunes the per-claim verification loop
type VerificationConfig struct {
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`
	TokenBudget   int `yaml:"token_budget" json:"token_budget"` // Estimated-token ceiling at evaluation
	SafetyMargin  int `yaml:"safety_margin" json:"safety_margin"`
	Workers       int `yaml:"workers" json:"workers"` // Concurrent claim verifiers in batch mode
}

// CacheConfig tunes search-result caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Dir     string        `yaml:"dir,omitempty" json:"dir,omitempty"` // Empty means memory-only
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// OutputConfig tunes report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the built-in defaults. Voted stages run warm for
// attempt diversity; single-shot stages run at zero temperature.
func DefaultConfig() *Config {
	return &Config{
		Judge: JudgeConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   60 * time.Second,
			MaxTokens: 2000,
		},
		Extraction: ExtractionConfig{
			Selection:      StageConfig{Completions: 3, MinSuccesses: 2, Temperature: 0.2, Preceding: 5, Following: 5},
			Disambiguation: StageConfig{Completions: 3, MinSuccesses: 2, Temperature: 0.2, Preceding: 5, Following: 0},
			Decomposition:  StageConfig{Completions: 1, MinSuccesses: 1, Temperature: 0, Preceding: 5, Following: 0},
			Validation:     StageConfig{Completions: 1, MinSuccesses: 1, Temperature: 0},
		},
		Search: SearchConfig{
			Provider:         "exa",
			ResultsPerQuery:  3,
			SnippetMaxChars:  2000,
			Timeout:          30 * time.Second,
			ExpandPages:      false,
			ExpandUserAgent:  "Veracity/0.1 (+https://github.com/veracitydev/veracity)",
			ExpandMaxBytes:   2_000_000,
			ExpandRatePerSec: 1,
			ExpandTimeout:    15 * time.Second,
		},
		Verification: VerificationConfig{
			MaxIterations: 5,
			TokenBudget:   120_000,
			SafetyMargin:  1000,
			Workers:       4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
