package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veracitydev/veracity/internal/extract"
	"github.com/veracitydev/veracity/internal/judge"
)

var extractTimeout time.Duration

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract verifiable claims from a document without verifying them",
	Long: `Extract runs only the claim extraction pipeline:
- Segment the document into sentences with context windows
- Select sentences with verifiable content (consensus voting)
- Disambiguate references against preceding context (consensus voting)
- Decompose into atomic claims and validate each one

The validated claims are printed as JSON to stdout.

Example:
  veracity extract answer.txt
  veracity extract answer.txt --metadata "Question: when was NASA founded?"`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&metadata, "metadata", "", "document metadata shown to the judge")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 5*time.Minute, "extraction timeout")
	extractCmd.Flags().StringVar(&judgeProvider, "judge", "", "judge provider (openai, anthropic, ollama)")
	extractCmd.Flags().StringVar(&judgeModel, "judge-model", "", "judge model name")
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := readDocument(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg := loadConfig()
	applyBackendFlags(cfg)

	if err := requireJudgeKey(cfg); err != nil {
		return err
	}

	// Extraction needs only the judge, not the search backend
	provider, err := judge.NewProvider(judge.ConfigFromModel(cfg.Judge))
	if err != nil {
		return fmt.Errorf("create judge provider: %w", err)
	}

	extractor := extract.NewExtractor(provider, cfg.Extraction)
	claims := extractor.Extract(ctx, text, metadata)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(claims); err != nil {
		return fmt.Errorf("encode claims: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Extracted %d validated claims\n", len(claims))

	return nil
}
