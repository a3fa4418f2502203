package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Scan the repository root and write a new snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Build(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}

			state := "updated"
			if report.Unchanged {
				state = "unchanged"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries, %d tools, %d skipped (%s, %s)\n",
				report.OutputPath, report.Snapshot.EntryCount, len(report.Snapshot.ToolNames),
				len(report.Diagnostics), state, report.Fingerprint)
			return err
		},
	}
	cmd.Flags().String("root", "", "Repository root to index (overrides the configuration)")
	cmd.Flags().StringP("output", "o", "", "Snapshot file to write (overrides the configuration)")
	cmd.Flags().IntP("workers", "w", 0, "Number of concurrent stat calls (default one per CPU)")
	return cmd
}
