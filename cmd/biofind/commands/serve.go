package commands

import "github.com/spf13/cobra"

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the snapshot as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Serve(cmd.Context(), options(cmd))
		},
	}
	cacheFlag(cmd)
	cmd.Flags().Bool("no-watch", false, "Do not reload when the snapshot file is replaced")
	return cmd
}
