package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions TOOL",
		Short: "List every stored version of a tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := c.app.Versions(cmd.Context(), options(cmd), args[0])
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), versions)
			}
			out := cmd.OutOrStdout()
			for _, e := range versions {
				tag := e.TagOrEmpty()
				if !e.HasTag() {
					tag = "-"
				}
				if _, err := fmt.Fprintf(out, "%s\t%s\n", tag, e.Path); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cacheFlag(cmd)
	cmd.Flags().Bool("json", false, "Print entries as JSON")
	return cmd
}
