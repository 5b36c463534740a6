package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelterconnect/shelter-matcher/pkg/core/services"
)

// MatchCmd creates the match command
func MatchCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match referrals to shelters, write the match file and email it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			noEmail, _ := cmd.Flags().GetBool("no-email")

			app.Logger.Debug("match command", zap.Bool("dry_run", dryRun), zap.Bool("no_email", noEmail))

			result, err := app.runMatching(app.Ctx, services.MatchOptions{
				DryRun:      dryRun,
				NoEmail:     noEmail,
				Diagnostics: os.Stdout,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Matching run complete!\n\n")
			fmt.Printf("Run ID:    %s\n", result.RunID)
			fmt.Printf("Referrals: %d\n", result.ReferralCount)
			fmt.Printf("Shelters:  %d (%d with bed counts)\n", result.ShelterCount, result.BedCount)
			fmt.Printf("Matches:   %d\n\n", len(result.Set.Rows))

			switch {
			case dryRun:
				fmt.Printf("Dry run - %s was not written or emailed.\n", result.Filename)
			case result.Emailed:
				fmt.Printf("Wrote %s and emailed it to %d recipients.\n", result.Path, len(app.Cfg.EmailRecipients))
			default:
				fmt.Printf("Wrote %s.\n", result.Path)
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Build matches without writing the file or sending email")
	cmd.Flags().Bool("no-email", false, "Write the match file but don't email it")

	return cmd
}
