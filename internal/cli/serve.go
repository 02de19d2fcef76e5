package cli

import (
	"github.com/spf13/cobra"
	"github.com/trackyourtime/tracky/internal/app"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *configPath)
		},
	}
}

func runServe(cmd *cobra.Command, configPath string) error {
	application, err := app.NewApplication(cmd.Context(), configPath)
	if err != nil {
		return err
	}
	return application.Run()
}
