// Package commands implements the CLI commands for the bud build tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"go.bud.dev/bud/internal/app"
	"go.bud.dev/bud/internal/build"
)

// Application is the CLI's view of the application logic, satisfied by
// *app.Components.
type Application interface {
	Run(ctx context.Context, targetNames []string, opts app.RunOptions, stdout io.Writer) error
}

// CLI represents the command line interface for bud.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "bud",
		Short:         "A content-addressed build tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.PersistentFlags().StringP("file", "f", "bud.yaml", "Path to the build manifest")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newRunCmd())
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

// SetOutput sets the output and error streams for the root command. Used
// for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
