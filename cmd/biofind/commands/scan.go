package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the entries of the repository root without writing a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.app.Scan(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), res.Entries)
			}
			out := cmd.OutOrStdout()
			for _, e := range res.Entries {
				if _, err := fmt.Fprintf(out, "%s\t%d\t%s\n", e.EntryName, e.SizeBytes, e.Path); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().String("root", "", "Repository root to list (overrides the configuration)")
	cmd.Flags().IntP("workers", "w", 0, "Number of concurrent stat calls (default one per CPU)")
	cmd.Flags().Bool("json", false, "Print entries as JSON")
	return cmd
}
