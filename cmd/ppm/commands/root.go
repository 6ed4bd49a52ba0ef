// Package commands implements the CLI commands for ppm.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/ppm/internal/app"
	"go.trai.ch/ppm/internal/build"
)

// CLI represents the command line interface for ppm.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.Options
}

// Application represents the application logic interface.
type Application interface {
	Install(ctx context.Context, opts app.Options, req app.InstallRequest) error
	Delete(ctx context.Context, opts app.Options, name string) error
	Update(ctx context.Context, opts app.Options, name, version string) error
	List(ctx context.Context, opts app.Options, pattern string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ppm",
		Short:         "Install Python packages and track them in requirements.json",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.opts.ManifestPath, "manifest", "m", "",
		"Manifest file to read and update (default from ppm.yaml, else requirements.json)")
	rootCmd.PersistentFlags().BoolVarP(&c.opts.Verbose, "verbose", "v", false,
		"Log each operation with its duration")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newDeleteCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
