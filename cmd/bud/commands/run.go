package commands

import (
	"github.com/spf13/cobra"

	"go.bud.dev/bud/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [targets...]",
		Short: "Build the targets declared in the manifest (all of them if none are given)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}

			return c.app.Run(cmd.Context(), args, app.RunOptions{ManifestPath: manifest}, cmd.OutOrStdout())
		},
	}
}
