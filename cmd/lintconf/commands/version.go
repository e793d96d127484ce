package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonemaro/lintconf/internal/version"
)

func newVersionCommand(opts *Options) *cobra.Command {
	var showFull bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Log.Debug("Printing version")
			if showFull {
				fmt.Fprintln(cmd.OutOrStdout(), version.FullVersion())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), version.Short())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showFull, "full", false,
		"show full version information")

	return cmd
}
