package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/trackyourtime/tracky/pkg/timeconv"
)

func newHoursCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hours <input>",
		Short: `Convert an hour input such as "8:30", "8,5" or "8.5" to decimal hours and H:MM`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours := timeconv.ConvertTimeStringToFloat(args[0])
			if math.IsNaN(hours) {
				return fmt.Errorf("cannot read %q as hours", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g hours (%s)\n", hours, timeconv.ConvertFloatTimeToHHMM(hours))
			return nil
		},
	}
}
