package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, closer, err := openStore(ctx, true)
		if err != nil {
			return err
		}
		defer closer()
		restoreOrWarn(ctx, st)

		out := cmd.OutOrStdout()
		pb := st.Phrasebook()
		fmt.Fprintf(out, "Status: %s (%s)\n", st.Status(), pb.T("status."+string(st.Status()), nil))
		fmt.Fprintf(out, "Cache: %s\n", cfg.CacheBackend)
		if name := st.FileName(); name != "" {
			recs := st.Records()
			fmt.Fprintf(out, "File: %s\n", name)
			fmt.Fprintf(out, "Records: %d (rated %d)\n", len(recs), len(votes.Rated(recs)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
