package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/xmlres/internal/app"
)

const defaultWaitTimeout = 60 * time.Second

func (c *CLI) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate XML documents against their grammars",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			wait, _ := cmd.Flags().GetBool("wait")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			trace, _ := cmd.Flags().GetBool("trace")
			asJSON, _ := cmd.Flags().GetBool("json")

			outputFormat := format(cmd)
			// --json is shorthand for --format=json
			if asJSON {
				outputFormat = "json"
			}

			return c.app.Validate(cmd.Context(), app.ValidateOptions{
				SettingsOptions: settingsOptions(cmd),
				Files:           args,
				Wait:            wait,
				Timeout:         timeout,
				Format:          outputFormat,
				Trace:           trace,
			})
		},
	}
	cmd.Flags().BoolP("wait", "w", false, "Revalidate once pending grammar downloads settle")
	cmd.Flags().Duration("timeout", defaultWaitTimeout, "Maximum time to wait for downloads with --wait")
	cmd.Flags().Bool("json", false, "Print results as JSON (shorthand for --format=json)")
	cmd.Flags().Bool("trace", false, "Log validation and download spans")
	return cmd
}
