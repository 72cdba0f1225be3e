package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fitcoach/internal/planning"
	"fitcoach/internal/service"
)

var (
	progressLimit    int
	progressFeedback string
	progressJSON     bool
)

func init() {
	progressCmd.Flags().IntVar(&progressLimit, "limit", service.ProgressSessionLimit, "number of recent sessions to analyze")
	progressCmd.Flags().StringVar(&progressFeedback, "feedback", "", "how training has felt lately")
	progressCmd.Flags().BoolVar(&progressJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Compare recent sessions with the plan's targets",
	Args:  cobra.NoArgs,
	RunE:  runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.coach.Ensure(cmd.Context(), a.inputs); err != nil {
		return err
	}
	report, err := a.coach.Progress(cmd.Context(), progressLimit, progressFeedback)
	if err != nil {
		return err
	}

	if progressJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return printProgress(cmd.OutOrStdout(), report)
}

func printProgress(out io.Writer, r planning.ProgressReport) error {
	s := r.Summary
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "SYSTEM\tSESSIONS\tDONE\tGAP\n")
	fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%+.1f\n", planning.Aerobic, s.Tally.Aerobic, s.Observed.Aerobic, s.Deficits.Aerobic)
	fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%+.1f\n", planning.AnaerobicAlactic, s.Tally.Alactic, s.Observed.Alactic, s.Deficits.Alactic)
	fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%+.1f\n", planning.AnaerobicLactic, s.Tally.Lactic, s.Observed.Lactic, s.Deficits.Lactic)
	fmt.Fprintf(w, "%s\t%d\t\t\n", planning.Mixed, s.Tally.Mixed)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n\nNext focus: %s\n", s.Text, r.NextFocus)
	if len(r.Recommendations) > 0 {
		fmt.Fprintln(out, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(out, "  - %s\n", rec)
		}
	}
	if len(r.AdaptationsOccurring) > 0 {
		fmt.Fprintln(out, "\nAdaptations under way:")
		for _, ad := range r.AdaptationsOccurring {
			fmt.Fprintf(out, "  - %s\n", ad)
		}
	}
	return nil
}
