package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veracitydev/veracity/internal/model"
	"github.com/veracitydev/veracity/internal/pipeline"
)

var verifyTimeout time.Duration

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Verify a single claim against web evidence",
	Long: `Verify runs the iterative verification loop on one claim:
- Generate a search query and retrieve evidence
- Assess sufficiency and refine the query until the evidence suffices
  or the iteration ceiling is reached
- Evaluate the accumulated evidence into a Supported/Refuted verdict

The verdict is printed as JSON to stdout.

Example:
  veracity verify "NASA was established in 1958."
  veracity verify "NASA was established in 1958." --search tavily`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 5*time.Minute, "verification timeout")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search result cache")
	verifyCmd.Flags().BoolVar(&expandPages, "expand-pages", false, "fetch result pages to widen evidence snippets")
	verifyCmd.Flags().StringVar(&judgeProvider, "judge", "", "judge provider (openai, anthropic, ollama)")
	verifyCmd.Flags().StringVar(&judgeModel, "judge-model", "", "judge model name")
	verifyCmd.Flags().StringVar(&searchProvider, "search", "", "search provider (exa, tavily)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	claimText := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	cfg := loadConfig()
	applyBackendFlags(cfg)
	cfg.Cache.Enabled = !noCache
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

	claim := model.ValidatedClaim{
		ClaimText:             claimText,
		IsCompleteDeclarative: true,
		DisambiguatedSentence: claimText,
		OriginalSentence:      claimText,
	}

	verdicts := p.VerifyClaims(ctx, []model.ValidatedClaim{claim})
	if len(verdicts) != 1 {
		return fmt.Errorf("expected one verdict, got %d", len(verdicts))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(verdicts[0]); err != nil {
		return fmt.Errorf("encode verdict: %w", err)
	}

	return nil
}
