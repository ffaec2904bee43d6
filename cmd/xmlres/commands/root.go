// Package commands implements the CLI commands for xmlres.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/xmlres/internal/app"
	"go.trai.ch/xmlres/internal/build"
)

// CLI represents the command line interface for xmlres.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Validate(ctx context.Context, opts app.ValidateOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	Serve(ctx context.Context, opts app.ServeOptions) error
	CacheList(opts app.SettingsOptions, format string) error
	CacheStatusOf(opts app.SettingsOptions, uri, format string) error
	CacheEvict(ctx context.Context, opts app.SettingsOptions) error
	Resolve(opts app.ResolveOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "xmlres",
		Short:         "Resolve, cache and validate XML grammars",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Settings file (default: xmlres.{yaml,yml,toml,json} found from the working directory up)")
	flags.StringP("format", "f", "auto", "Output format: auto, pretty, plain, or json")
	flags.BoolP("no-cache", "n", false, "Do not serve remote resources from the cache")
	flags.Bool("offline", false, "Do not download external resources")
	flags.String("cache-path", "", "Directory of the resource cache")
	flags.Bool("json-logs", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newValidateCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newResolveCmd())
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

func settingsOptions(cmd *cobra.Command) app.SettingsOptions {
	configPath, _ := cmd.Flags().GetString("config")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	offline, _ := cmd.Flags().GetBool("offline")
	cachePath, _ := cmd.Flags().GetString("cache-path")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	return app.SettingsOptions{
		ConfigPath: configPath,
		NoCache:    noCache,
		Offline:    offline,
		CachePath:  cachePath,
		JSONLogs:   jsonLogs,
	}
}

func format(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("format")
	return f
}
