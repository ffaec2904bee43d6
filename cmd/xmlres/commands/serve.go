package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/xmlres/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve validation and the resource cache over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			origins, _ := cmd.Flags().GetStringSlice("origin")
			return c.app.Serve(cmd.Context(), app.ServeOptions{
				SettingsOptions: settingsOptions(cmd),
				Addr:            addr,
				Origins:         origins,
			})
		},
	}
	cmd.Flags().String("addr", app.DefaultAddr, "Address to listen on")
	cmd.Flags().StringSlice("origin", nil, "Allowed CORS and WebSocket origin (repeatable, default any)")
	return cmd
}
