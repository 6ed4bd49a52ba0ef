package commands

import "github.com/spf13/cobra"

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [PATTERN]",
		Short: "List recorded packages, optionally fuzzy-filtered by PATTERN",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pattern string
			if len(args) == 1 {
				pattern = args[0]
			}
			return c.app.List(cmd.Context(), c.opts, pattern)
		},
	}
}
