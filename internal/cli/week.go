package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/trackyourtime/tracky/internal/utils"
	"github.com/trackyourtime/tracky/pkg/week"
)

func newWeekCommand(clock utils.Clock) *cobra.Command {
	return &cobra.Command{
		Use:   "week [date|week]",
		Short: "Print the ISO week and business days of a date or ISO week like 2024-W10 (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today := clock.Now()
			date := today
			if len(args) == 1 {
				parsed, err := parseWeekArg(args[0])
				if err != nil {
					return err
				}
				date = parsed
			}

			number := week.WeekNumberFor(date)
			out := cmd.OutOrStdout()
			if number.Equal(week.WeekNumberFor(today)) {
				fmt.Fprintf(out, "Week %s (current)\n", number)
			} else {
				fmt.Fprintf(out, "Week %s\n", number)
			}
			for _, day := range week.GetWeekDaysFor(date) {
				fmt.Fprintf(out, "  %d %s %s\n", week.GetDayNumberFor(day), day.Format("Mon"), day.Format(week.DateLayout))
			}
			return nil
		},
	}
}

func parseWeekArg(arg string) (time.Time, error) {
	if strings.Contains(arg, "-W") {
		number, err := week.WeekNumberFromString(arg)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid week %q, expected YYYY-Www: %w", arg, err)
		}
		return number.Monday(time.UTC), nil
	}
	date, err := time.Parse(week.DateLayout, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or YYYY-Www", arg)
	}
	return date, nil
}
