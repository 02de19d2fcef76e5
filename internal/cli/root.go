package cli

import (
	"github.com/spf13/cobra"
	"github.com/trackyourtime/tracky/internal/app"
	"github.com/trackyourtime/tracky/internal/utils"
)

// NewRootCommand builds the tracky command tree. Without a subcommand it serves the web application.
func NewRootCommand(clock utils.Clock) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "tracky",
		Short: "Track-your-time – book project hours to Troi and attendances to Personio",
		Long: `tracky serves a web application for booking project hours to Troi and
recording working times in Personio. The subcommands expose the hour and
week helpers the application uses.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", app.ConfigPath, "path of the YAML configuration file")

	root.AddCommand(newServeCommand(&configPath))
	root.AddCommand(newWeekCommand(clock))
	root.AddCommand(newHoursCommand())
	return root
}
