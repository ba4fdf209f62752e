package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veracitydev/veracity/internal/model"
	"github.com/veracitydev/veracity/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	metadata       string
	checkTimeout   time.Duration
	judgeProvider  string
	judgeModel     string
	searchProvider string
	noCache        bool
	noFooter       bool
	expandPages    bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Fact-check a text document end to end",
	Long: `Check runs the full pipeline on a document:
- Extract verifiable atomic claims through the judge pipeline
- Gather web evidence for each claim with iterative search
- Produce a verdict per claim and an aggregate report

Pass "-" to read the document from stdin.

Example:
  veracity check answer.txt
  veracity check answer.txt --json report.json --md report.md
  cat answer.txt | veracity check - --search tavily`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().StringVar(&metadata, "metadata", "", "document metadata shown to the judge (e.g. question or source)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 15*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search result cache")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().BoolVar(&expandPages, "expand-pages", false, "fetch result pages to widen evidence snippets")

	// Backend flags
	checkCmd.Flags().StringVar(&judgeProvider, "judge", "", "judge provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&judgeModel, "judge-model", "", "judge model name")
	checkCmd.Flags().StringVar(&searchProvider, "search", "", "search provider (exa, tavily)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := readDocument(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := loadConfig()
	applyBackendFlags(cfg)
	cfg.Cache.Enabled = !noCache
	cfg.Output.IncludeFooter = !noFooter
	if expandPages {
		cfg.Search.ExpandPages = true
	}

	if err := requireJudgeKey(cfg); err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	r, err := p.CheckText(ctx, text, metadata)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if err := p.RenderReport(r, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// readDocument reads the document from a file or stdin ("-")
func readDocument(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}

// applyBackendFlags overrides configured backends with CLI flags. API keys
// are re-resolved when the judge provider changes.
func applyBackendFlags(cfg *model.Config) {
	if judgeProvider != "" {
		cfg.Judge.Provider = judgeProvider
		switch judgeProvider {
		case "openai":
			cfg.Judge.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.Judge.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "ollama":
			cfg.Judge.APIKey = ""
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.Judge.BaseURL = baseURL
			}
		}
	}
	if judgeModel != "" {
		cfg.Judge.Model = judgeModel
	}
	if searchProvider != "" {
		cfg.Search.Provider = searchProvider
	}
}
