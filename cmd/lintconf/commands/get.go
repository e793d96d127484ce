package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sonemaro/lintconf/cmd/lintconf/app"
)

func newGetCommand(opts *Options) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "get <key.path>",
		Short: "Print one resolved configuration value",
		Long: `Resolves a dotted key path through the configuration chain, for example
"style.MagicNumber.active", and prints the value with its type.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(a *app.App) error {
				return a.Get(args[0], kind)
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", app.KindAuto,
		fmt.Sprintf("value type (%s)", strings.Join(app.ValueKinds(), ", ")))

	return cmd
}
