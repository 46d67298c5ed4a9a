package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/ratelens-cli/internal/parser"
	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

var errNoDataset = errors.New("no dataset loaded; run 'ratelens load <file.csv>' first")

var loadCmd = &cobra.Command{
	Use:   "load <file.csv>",
	Short: "Load a ratings export and cache it as the current dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]
		text, err := parser.ReadFile(path)
		if err != nil {
			return err
		}
		st, closer, err := openStore(ctx, true)
		if err != nil {
			return err
		}
		defer closer()
		if err := st.LoadText(ctx, text, baseName(path)); err != nil {
			return err
		}
		recs := st.Records()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Loaded %d records (%d rated) from %s\n", len(recs), len(votes.Rated(recs)), st.FileName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func baseName(path string) string { return filepath.Base(path) }
