package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/ratelens-cli/internal/analysis"
	"github.com/KaramelBytes/ratelens-cli/internal/utils"
)

var (
	repSections []string
	repFormat   string
	repOutput   string
)

var reportCmd = &cobra.Command{
	Use:   "report [file.csv]",
	Short: "Print statistics, trend and gamer profile for a dataset",
	Long: `Print statistics, trend and gamer profile. Without a file the cached dataset
is used; a file given here is analyzed without replacing the cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secs, err := analysis.ExpandSections(repSections)
		if err != nil {
			return err
		}
		format := strings.ToLower(strings.TrimSpace(repFormat))
		switch format {
		case "markdown", "md", "table", "json":
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|table|json)", repFormat)
		}

		ctx := cmd.Context()
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		st, closer, err := datasetStore(ctx, path)
		if err != nil {
			return err
		}
		defer closer()

		out, err := renderReport(st.Report(), secs, format)
		if err != nil {
			return err
		}
		if repOutput != "" {
			if err := utils.SafeWriteFile(repOutput, []byte(out)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", repOutput)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringSliceVarP(&repSections, "section", "s", nil, "sections to include: "+strings.Join(analysis.Sections, "|")+"|all (repeatable)")
	reportCmd.Flags().StringVarP(&repFormat, "format", "f", "markdown", "output format: markdown | table | json")
	reportCmd.Flags().StringVarP(&repOutput, "output", "o", "", "optional path to write the report")
}

func renderReport(r *analysis.Report, secs []string, format string) (string, error) {
	switch format {
	case "table":
		return r.Table(secs...), nil
	case "json":
		b, err := utils.PrettyJSON(reportJSON(r, secs))
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	default:
		return r.Markdown(secs...), nil
	}
}

// reportJSON keeps only the requested sections.
func reportJSON(r *analysis.Report, secs []string) map[string]any {
	m := map[string]any{"name": r.Name, "records": r.Records}
	for _, s := range secs {
		switch s {
		case analysis.SectionOverview:
			m["stats"] = r.Stats
		case analysis.SectionYears:
			m["years"] = r.Years
			m["highest_rated_years"] = r.HighestRated
		case analysis.SectionPlatforms:
			m["platforms"] = r.Platforms
		case analysis.SectionTrend:
			m["trend"] = r.Trend
			m["trend_summary"] = r.TrendSummary
		case analysis.SectionProfile:
			m["profile"] = r.Profile
		case analysis.SectionActivity:
			m["activity"] = r.Activity
		}
	}
	return m
}
