package cmd

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/ratelens-cli/internal/analysis"
	"github.com/KaramelBytes/ratelens-cli/internal/lookup"
	"github.com/KaramelBytes/ratelens-cli/internal/utils"
)

var (
	enrSample int
	enrFormat string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich [file.csv]",
	Short: "Compare your ratings with public critic scores",
	Long: `Look up a sample of your rated games in the public game database and show
how your score compares with the aggregated critic rating (converted to 0-5).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(enrFormat))
		if format != "table" && format != "json" {
			return fmt.Errorf("unsupported --format: %s (use table|json)", enrFormat)
		}
		n := cfg.EnrichSampleSize
		if cmd.Flags().Changed("sample") {
			n = enrSample
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		st, closer, err := datasetStore(ctx, path)
		if err != nil {
			return err
		}
		defer closer()

		rows, err := lookup.Compare(ctx, newLookupClient(), st.Records(), n)
		if err != nil {
			return fmt.Errorf("enrich: %w", err)
		}
		out := cmd.OutOrStdout()
		if format == "json" {
			b, err := utils.PrettyJSON(rows)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		fmt.Fprintln(out, comparisonTable(rows))
		if mean, matched := lookup.MeanDelta(rows); matched > 0 {
			fmt.Fprintln(out, deltaSummary(mean, matched, len(rows)))
		} else {
			fmt.Fprintf(os.Stderr, "⚠ Warning: no public ratings found for %d titles\n", len(rows))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.Flags().IntVarP(&enrSample, "sample", "n", 10, "number of rated titles to look up (0 = all; default from config)")
	enrichCmd.Flags().StringVarP(&enrFormat, "format", "f", "table", "output format: table | json")
}

func comparisonTable(rows []lookup.Comparison) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Title", "Yours", "Public", "Delta", "Match"})
	for _, r := range rows {
		public, delta := "-", "-"
		if r.PublicRating != nil {
			public = analysis.FormatRating(*r.PublicRating)
		}
		if r.Delta != nil {
			delta = fmt.Sprintf("%+.2f", *r.Delta)
		}
		match := r.MatchName
		switch {
		case r.Err != "":
			match = "error: " + r.Err
		case !r.Exact:
			match += " (closest)"
		}
		t.AppendRow(table.Row{r.Title, analysis.FormatRating(r.YourRating), public, delta, match})
	}
	return t.Render()
}

func deltaSummary(mean float64, matched, total int) string {
	return fmt.Sprintf("✓ Compared %d of %d titles; on average you rate %s points %s critics",
		matched, total, analysis.FormatRating(math.Abs(mean)), aboveBelow(mean))
}

func aboveBelow(v float64) string {
	if v < 0 {
		return "below"
	}
	return "above"
}
