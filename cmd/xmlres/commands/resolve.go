package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/xmlres/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a public or system identifier through catalogs, file associations and bundled schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			public, _ := cmd.Flags().GetString("public")
			system, _ := cmd.Flags().GetString("system")
			base, _ := cmd.Flags().GetString("base")
			list, _ := cmd.Flags().GetBool("list")
			return c.app.Resolve(app.ResolveOptions{
				SettingsOptions: settingsOptions(cmd),
				Public:          public,
				System:          system,
				Base:            base,
				List:            list,
				Format:          format(cmd),
			})
		},
	}
	cmd.Flags().String("public", "", "Public identifier")
	cmd.Flags().String("system", "", "System identifier")
	cmd.Flags().String("base", "", "Location the identifier is relative to (default: the settings root)")
	cmd.Flags().Bool("list", false, "List the resolvers in the order they are consulted")
	return cmd
}
