// Package report renders fact-check reports to JSON, Markdown, and a short
// stdout summary.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/veracitydev/veracity/internal/model"
)

// Renderer writes reports to files and the terminal
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a report renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.FactCheckReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes the report as a human-readable Markdown document
func (r *Renderer) RenderMarkdown(report *model.FactCheckReport, path string) error {
	var b strings.Builder

	b.WriteString("# Fact-Check Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.Timestamp.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**%s**\n\n", report.Summary)

	b.WriteString("## Verdicts\n\n")
	if len(report.Verdicts) == 0 {
		b.WriteString("No verifiable claims were found.\n\n")
	}
	for i, v := range report.Verdicts {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, v.ClaimText)
		fmt.Fprintf(&b, "- **Result**: %s\n", v.Result)
		fmt.Fprintf(&b, "- **Reasoning**: %s\n", v.Reasoning)
		if v.OriginalSentence != "" && v.OriginalSentence != v.ClaimText {
			fmt.Fprintf(&b, "- **From**: %s\n", v.OriginalSentence)
		}
		b.WriteString("\n")

		if len(v.Sources) > 0 {
			b.WriteString("Sources:\n\n")
			for _, s := range v.Sources {
				marker := ""
				if s.IsInfluential {
					marker = " ★"
				}
				if s.Title != "" {
					fmt.Fprintf(&b, "- [%s](%s)%s\n", s.Title, s.URL, marker)
				} else {
					fmt.Fprintf(&b, "- <%s>%s\n", s.URL, marker)
				}
			}
			b.WriteString("\n")
		}
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("Generated by Veracity. Verdicts reflect retrieved evidence only, not ground truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderSummary prints a short result overview to stdout
func (r *Renderer) RenderSummary(report *model.FactCheckReport) {
	fmt.Println()
	fmt.Println(report.Summary)
	for _, v := range report.Verdicts {
		fmt.Printf("  [%s] %s\n", v.Result, v.ClaimText)
	}
}
