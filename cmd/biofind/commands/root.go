// Package commands implements the CLI commands for biofind.
package commands

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/biofind/internal/app"
	"go.trai.ch/biofind/internal/build"
)

// CLI represents the command line interface for biofind.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "biofind",
		Short:         "Index a tool repository and resolve tool names against it",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (default ./biofind.yaml)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newScanCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newVersionsCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newServeCmd())
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

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}

// options collects the flags shared by the commands into app options.
func options(cmd *cobra.Command) app.Options {
	var opts app.Options
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	if f := cmd.Flags().Lookup("root"); f != nil {
		opts.Root = f.Value.String()
	}
	for _, name := range []string{"cache", "output"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Value.String() != "" {
			opts.Cache = f.Value.String()
		}
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("limit") {
		limit, _ := cmd.Flags().GetInt("limit")
		opts.Limit = &limit
	}
	if cmd.Flags().Changed("cutoff") {
		cutoff, _ := cmd.Flags().GetFloat64("cutoff")
		opts.Cutoff = &cutoff
	}
	opts.NoWatch, _ = cmd.Flags().GetBool("no-watch")
	return opts
}

func cacheFlag(cmd *cobra.Command) {
	cmd.Flags().String("cache", "", "Path to the snapshot file (overrides the configuration)")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
