package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ppm/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	var req app.InstallRequest

	cmd := &cobra.Command{
		Use:   "install [NAME...]",
		Short: "Install packages and record them in the manifest",
		Example: `  ppm install pandas
  ppm install pandas numpy --version 1.0.0
  ppm install -r requirements.json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Names = args
			return c.app.Install(cmd.Context(), c.opts, req)
		},
	}

	cmd.Flags().StringVar(&req.Version, "version", "", "Pin every named package to this version")
	cmd.Flags().StringVarP(&req.RequirementsPath, "requirements", "r", "",
		"Install every package listed in this manifest (names are ignored)")

	return cmd
}
