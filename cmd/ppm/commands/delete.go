package commands

import "github.com/spf13/cobra"

func (c *CLI) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"uninstall"},
		Short:   "Uninstall a package and remove it from the manifest",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Delete(cmd.Context(), c.opts, args[0])
		},
	}
}
