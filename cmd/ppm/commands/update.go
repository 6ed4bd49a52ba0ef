package commands

import "github.com/spf13/cobra"

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update NAME VERSION",
		Short: "Reinstall a package pinned to VERSION",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Update(cmd.Context(), c.opts, args[0], args[1])
		},
	}
}
