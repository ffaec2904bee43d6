package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the resource cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List cached resources with their digests",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CacheList(settingsOptions(cmd), format(cmd))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status <uri>",
		Short: "Show the cache state of a URI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.CacheStatusOf(settingsOptions(cmd), args[0], format(cmd))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "evict",
		Short: "Remove every cached resource",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CacheEvict(cmd.Context(), settingsOptions(cmd))
		},
	})
	return cmd
}
