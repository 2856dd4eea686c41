package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/pb003jbl/ticketrca/internal/dataset"
	"github.com/pb003jbl/ticketrca/internal/narrative"
	"github.com/pb003jbl/ticketrca/internal/rca"
	"github.com/pb003jbl/ticketrca/internal/ticket"
)

var (
	analyzeFile      string
	analyzeIncident  string
	analyzeDate      string
	analyzeWindow    int
	analyzeFormat    string
	analyzeRender    bool
	analyzeNarrative bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a root cause analysis for an incident against a ticket export",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		table, err := dataset.NewLoader().LoadFile(analyzeFile)
		if err != nil {
			return err
		}
		store := ticket.NewNormalizer().Normalize(table)

		query := rca.Query{
			Description: analyzeIncident,
			WindowDays:  analyzeWindow,
		}
		if query.WindowDays <= 0 {
			query.WindowDays = cfg.WindowDays
		}
		if analyzeDate != "" {
			anchor := rca.ExtractIncidentDate(analyzeDate)
			if anchor == nil {
				return fmt.Errorf("invalid --date value %q, expected M/D/Y", analyzeDate)
			}
			query.IncidentDate = anchor
		}

		analyzer := rca.NewAnalyzer(store, rca.WithTopComponents(cfg.TopComponents))
		report := analyzer.GenerateReport(query)

		switch analyzeFormat {
		case "json":
			encoded, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		case "markdown":
			if err := printMarkdown(cmd, rca.FormatReport(report)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown output format: %s (must be markdown or json)", analyzeFormat)
		}

		if analyzeNarrative && report.Status == rca.StatusOK {
			return printNarrative(cmd, cfg.Narrative.Model, cfg.Narrative.MaxTokens, report)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Path to the ticket export (CSV)")
	analyzeCmd.Flags().StringVar(&analyzeIncident, "incident", "", "Free-text incident description")
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "Explicit incident date (M/D/Y), overrides any date in the description")
	analyzeCmd.Flags().IntVar(&analyzeWindow, "window", 0, "Time window in days around the incident date (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "markdown", "Output format: markdown or json")
	analyzeCmd.Flags().BoolVar(&analyzeRender, "render", false, "Render markdown for the terminal")
	analyzeCmd.Flags().BoolVar(&analyzeNarrative, "narrative", false, "Append a model-generated narrative analysis (requires ANTHROPIC_API_KEY)")
	_ = analyzeCmd.MarkFlagRequired("file")
	_ = analyzeCmd.MarkFlagRequired("incident")
}

func printMarkdown(cmd *cobra.Command, markdown string) error {
	if !analyzeRender {
		fmt.Fprintln(cmd.OutOrStdout(), markdown)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

func printNarrative(cmd *cobra.Command, model string, maxTokens int, report *rca.Report) error {
	generator := narrative.NewAnthropicGenerator(narrative.Config{
		Model:     model,
		MaxTokens: maxTokens,
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	analysis, err := generator.Generate(ctx, narrative.BuildPrompt(report))
	if err != nil {
		return fmt.Errorf("narrative generation failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\n## Narrative Analysis")
	fmt.Fprintln(cmd.OutOrStdout(), analysis)
	return nil
}
