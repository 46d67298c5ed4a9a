package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the current dataset and clear the cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, closer, err := openStore(ctx, true)
		if err != nil {
			return err
		}
		defer closer()
		if err := st.Reset(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Dataset cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
