package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelterconnect/shelter-matcher/pkg/core/services"
)

// ScheduleCmd creates the schedule command
func ScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List upcoming scheduled runs, or run matching on the schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			run, _ := cmd.Flags().GetBool("run")

			rule := app.Cfg.Schedule.RRule
			if rule == "" {
				return fmt.Errorf("no schedule.rrule configured")
			}

			app.Logger.Debug("schedule command", zap.String("rrule", rule), zap.Int("count", count), zap.Bool("run", run))

			if !run {
				runs, err := services.NextRuns(rule, time.Now(), count)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Println("No upcoming runs - the schedule has ended.")
					return nil
				}

				fmt.Printf("\nNext %d scheduled runs:\n", len(runs))
				for i, t := range runs {
					fmt.Printf("  %2d. %s\n", i+1, t.Format("Mon 2006-01-02 15:04 MST"))
				}
				fmt.Println()
				return nil
			}

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := services.RunOnSchedule(ctx, rule, app.Logger, func(ctx context.Context) error {
				_, err := app.runMatching(ctx, services.MatchOptions{Diagnostics: os.Stdout})
				return err
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().Int("count", 5, "Number of upcoming runs to list")
	cmd.Flags().Bool("run", false, "Stay running and execute matching at each scheduled time")

	return cmd
}
