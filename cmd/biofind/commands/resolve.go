package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/biofind/internal/core/domain"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Check tool names against the snapshot and suggest close matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Resolve(cmd.Context(), options(cmd), args)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return printResolution(cmd.OutOrStdout(), res)
		},
	}
	cacheFlag(cmd)
	cmd.Flags().IntP("limit", "n", domain.DefaultLimit, "Maximum suggestions per missing name")
	cmd.Flags().Float64("cutoff", domain.DefaultCutoff, "Minimum similarity of a suggestion, between 0 and 1")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func printResolution(w io.Writer, res domain.ResolutionResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "found (%d): %s\n", len(res.Found), strings.Join(res.Found, ", "))
	fmt.Fprintf(&b, "missing (%d): %s\n", len(res.Missing), strings.Join(res.Missing, ", "))

	seen := make(map[string]struct{}, len(res.Missing))
	for _, q := range res.Missing {
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		if s, ok := res.Suggestions[q]; ok {
			fmt.Fprintf(&b, "  %s: did you mean %s?\n", q, strings.Join(s, ", "))
		}
	}

	for _, e := range res.Entries {
		fmt.Fprintf(&b, "%s\t%s\n", e.EntryName, e.Path)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
