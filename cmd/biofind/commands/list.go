package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [LIMIT]",
		Short: "List tool names in sorted order",
		Long:  fmt.Sprintf("List tool names in sorted order. LIMIT defaults to %d; 0 lists every tool.", domain.DefaultListLimit),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := domain.DefaultListLimit
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return domain.Kind(domain.ErrValidation, zerr.With(zerr.New("limit must be an integer"), "limit", args[0]))
				}
				limit = n
			}

			names, total, err := c.app.List(cmd.Context(), options(cmd), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}
			if len(names) < total {
				_, err = fmt.Fprintf(out, "(%d of %d tools)\n", len(names), total)
			}
			return err
		},
	}
	cacheFlag(cmd)
	return cmd
}
