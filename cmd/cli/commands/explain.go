package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelterconnect/shelter-matcher/pkg/core/services"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorDim   = "\033[2m"
)

const columnSampleLimit = 20

// ExplainCmd creates the explain command
func ExplainCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [referral_id]",
		Short: "Show why each referral does or doesn't match each shelter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var referralID string
			if len(args) > 0 {
				referralID = args[0]
			}
			columns, _ := cmd.Flags().GetString("columns")
			noColor, _ := cmd.Flags().GetBool("no-color")

			app.Logger.Debug("explain command", zap.String("referral_id", referralID), zap.String("columns", columns))

			explanations, inputs, err := services.ExplainMatches(app.Ctx, app.Source, app.Logger, referralID)
			if err != nil {
				return err
			}

			if columns != "" {
				printColumnSamples(os.Stdout, columns, services.SampleColumns(inputs.RawShelters, columns, columnSampleLimit))
			}

			printExplanations(os.Stdout, explanations, !noColor)
			return nil
		},
	}

	cmd.Flags().String("columns", "", "Also list raw shelter columns whose name contains this text, with sample values")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}

func printExplanations(w io.Writer, explanations []services.ReferralExplanation, color bool) {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}

	for _, e := range explanations {
		ref := e.Referral
		fmt.Fprintf(w, "\nReferral %s (%s %s) - %d of %d shelters match\n",
			ref.RowID, ref.FirstName, ref.LastName, e.MatchCount(), len(e.Verdicts))
		fmt.Fprintf(w, "%s\n", paint(colorDim, fmt.Sprintf("SPA=%s, age=%s, gender_pref=%s, gender_id=%s",
			optionalInt(ref.SPA), optionalInt(ref.Age), ref.GenderBedPref, ref.GenderIdentity)))

		for _, v := range e.Verdicts {
			if v.Matched {
				fmt.Fprintf(w, "  %s %s (%s)\n", paint(colorGreen, "✓"), v.ShelterUID, v.ShelterName)
			} else {
				fmt.Fprintf(w, "  %s %s (%s): %s\n", paint(colorRed, "✗"), v.ShelterUID, v.ShelterName, v.Reason)
			}
		}
	}
	fmt.Fprintln(w)
}

func printColumnSamples(w io.Writer, substr string, samples []services.ColumnSample) {
	if len(samples) == 0 {
		fmt.Fprintf(w, "\nNo shelter columns contain %q\n", substr)
		return
	}

	fmt.Fprintf(w, "\nShelter columns containing %q:\n", substr)
	for _, s := range samples {
		fmt.Fprintf(w, "  %s: %v\n", s.Name, s.Values)
	}
}

func optionalInt(p *int) string {
	if p == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *p)
}
