package commands

import (
	"github.com/spf13/cobra"

	"github.com/sonemaro/lintconf/cmd/lintconf/app"
)

func newValidateCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check user configuration against the defaults",
		Long: `Reports every key of the user configuration that is unknown or whose
shape differs from the defaults. The command fails only when
config > warningsAsErrors is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, (*app.App).Validate)
		},
	}
}

func newRulesCommand(opts *Options) *cobra.Command {
	var only, skip string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the resolved rule sets and rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(a *app.App) error {
				return a.Rules(only, skip)
			})
		},
	}

	cmd.Flags().StringVar(&only, "only", "",
		"comma separated rule names to keep; \"Magic*\" matches a prefix, \"*Method\" a substring")
	cmd.Flags().StringVar(&skip, "skip", "",
		"comma separated rule names to leave out")

	return cmd
}

func newDefaultsCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in default configuration",
		Long: `Prints the default configuration every run is composed over. It is
a starting point for a user configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, (*app.App).Defaults)
		},
	}
}

func newPlanCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <path>",
		Short: "Show which active rules apply to each file of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(a *app.App) error {
				return a.Plan(args[0])
			})
		},
	}
}
